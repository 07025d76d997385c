package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"hospital-feedback-server/models"
)

// FeedbackStore owns the tenant-scoped feedback collection. Every read takes
// the hospital id as its first parameter; there is no global query path.
type FeedbackStore struct {
	db *gorm.DB
}

// NewFeedbackStore creates a feedback store over the given database handle
func NewFeedbackStore(db *gorm.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Create validates a submission, normalizes sentiment to the signed index and
// persists a new feedback record. The id and created_at are assigned by the
// database.
func (s *FeedbackStore) Create(sub models.FeedbackSubmission) (*models.Feedback, error) {
	sub.HospitalID = strings.TrimSpace(sub.HospitalID)
	sub.DepartmentID = strings.TrimSpace(sub.DepartmentID)

	if sub.HospitalID == "" {
		return nil, &ValidationError{Field: "hospital_id", Reason: "must not be empty"}
	}
	if sub.DepartmentID == "" {
		return nil, &ValidationError{Field: "department_id", Reason: "must not be empty"}
	}

	sentiment, err := resolveSentiment(sub)
	if err != nil {
		return nil, err
	}

	switch sub.ContentTypeIndex {
	case models.ContentTypeText:
		if strings.TrimSpace(sub.TextContent) == "" {
			return nil, &ValidationError{Field: "text_content", Reason: "required for text feedback"}
		}
		sub.MediaContent = ""
	case models.ContentTypeVoice, models.ContentTypeVideo:
		if strings.TrimSpace(sub.MediaContent) == "" {
			return nil, &ValidationError{Field: "media_content", Reason: "required for voice and video feedback"}
		}
		sub.TextContent = ""
	default:
		return nil, &ValidationError{Field: "content_type_index", Reason: "must be 0 (text), 1 (voice) or 2 (video)"}
	}

	feedback := models.Feedback{
		PatientID:        sub.PatientID,
		HospitalID:       sub.HospitalID,
		DepartmentID:     sub.DepartmentID,
		Topic:            sub.Topic,
		SentimentIndex:   sentiment,
		ContentTypeIndex: sub.ContentTypeIndex,
		TextContent:      sub.TextContent,
		MediaContent:     sub.MediaContent,
	}

	if err := s.db.Create(&feedback).Error; err != nil {
		return nil, err
	}

	return &feedback, nil
}

// ListByHospital returns all feedback for the tenant, newest first. Unknown
// hospitals yield an empty slice, not an error.
func (s *FeedbackStore) ListByHospital(hospitalID string) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	if err := s.db.
		Where("hospital_id = ?", hospitalID).
		Order("created_at DESC").
		Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// GetByID returns a single feedback record within the tenant's scope
func (s *FeedbackStore) GetByID(hospitalID string, id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	err := s.db.
		Where("hospital_id = ?", hospitalID).
		First(&feedback, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

// AttachResponse records an administrator's reply on a feedback record and
// marks it answered. A second call overwrites the previous reply and the
// record stays answered; there is no re-open transition. The mutation is a
// single UPDATE so concurrent readers see either the old or the new record.
func (s *FeedbackStore) AttachResponse(hospitalID string, id uint, text string) (*models.Feedback, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "response", Reason: "must not be empty"}
	}

	result := s.db.Model(&models.Feedback{}).
		Where("id = ? AND hospital_id = ?", id, hospitalID).
		Updates(map[string]interface{}{
			"response":        text,
			"response_status": true,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.GetByID(hospitalID, id)
}

// resolveSentiment picks the canonical signed index from a submission that may
// carry the index, the string label, or both
func resolveSentiment(sub models.FeedbackSubmission) (int, error) {
	if sub.SentimentIndex != nil {
		index := *sub.SentimentIndex
		if index < models.SentimentNegative || index > models.SentimentPositive {
			return 0, &ValidationError{Field: "sentiment_index", Reason: "must be -1, 0 or 1"}
		}
		if sub.Sentiment != "" {
			// Both forms supplied: they must agree, the two representations
			// never diverge for one record.
			if label, ok := models.ParseSentimentLabel(strings.ToLower(strings.TrimSpace(sub.Sentiment))); !ok || label != index {
				return 0, &ValidationError{Field: "sentiment", Reason: "label does not match sentiment_index"}
			}
		}
		return index, nil
	}

	if sub.Sentiment != "" {
		index, ok := models.ParseSentimentLabel(strings.ToLower(strings.TrimSpace(sub.Sentiment)))
		if !ok {
			return 0, &ValidationError{Field: "sentiment", Reason: "must be positive, neutral or negative"}
		}
		return index, nil
	}

	return 0, &ValidationError{Field: "sentiment_index", Reason: "must not be empty"}
}
