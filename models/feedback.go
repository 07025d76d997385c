package models

import (
	"time"
)

// Sentiment index values. The signed index is the canonical representation;
// the string labels only exist at the API boundary.
const (
	SentimentNegative = -1
	SentimentNeutral  = 0
	SentimentPositive = 1
)

// Content type index values
const (
	ContentTypeText  = 0
	ContentTypeVoice = 1
	ContentTypeVideo = 2
)

// Feedback represents one patient submission, scoped to a hospital
type Feedback struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	PatientID        string    `json:"patient_id" gorm:"size:64;not null;index"`
	HospitalID       string    `json:"hospital_id" gorm:"size:64;not null;index"`
	DepartmentID     string    `json:"department_id" gorm:"size:64;not null;index"`
	Topic            string    `json:"topic" gorm:"size:128"`
	SentimentIndex   int       `json:"sentiment_index" gorm:"type:int;not null;check:sentiment_index >= -1 AND sentiment_index <= 1"`
	ContentTypeIndex int       `json:"content_type_index" gorm:"type:int;not null;check:content_type_index >= 0 AND content_type_index <= 2"`
	TextContent      string    `json:"text_content,omitempty" gorm:"type:text"`
	MediaContent     string    `json:"media_content,omitempty" gorm:"size:512"`
	Response         string    `json:"response,omitempty" gorm:"type:text"`
	ResponseStatus   bool      `json:"response_status" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets custom table name
func (Feedback) TableName() string { return "feedbacks" }

// Answered reports whether an administrator has replied to this feedback
func (f *Feedback) Answered() bool {
	return f.ResponseStatus && f.Response != ""
}

// SentimentLabel returns the display label for the stored sentiment index
func (f *Feedback) SentimentLabel() string {
	return SentimentLabel(f.SentimentIndex)
}

// ContentTypeLabel returns the display label for the stored content type index
func (f *Feedback) ContentTypeLabel() string {
	return ContentTypeLabel(f.ContentTypeIndex)
}

// SentimentLabel maps a signed sentiment index to its display label
func SentimentLabel(index int) string {
	switch index {
	case SentimentPositive:
		return "positive"
	case SentimentNegative:
		return "negative"
	default:
		return "neutral"
	}
}

// ParseSentimentLabel maps a display label back to the signed index
func ParseSentimentLabel(label string) (int, bool) {
	switch label {
	case "positive":
		return SentimentPositive, true
	case "neutral":
		return SentimentNeutral, true
	case "negative":
		return SentimentNegative, true
	default:
		return 0, false
	}
}

// ContentTypeLabel maps a content type index to its display label
func ContentTypeLabel(index int) string {
	switch index {
	case ContentTypeVoice:
		return "voice"
	case ContentTypeVideo:
		return "video"
	default:
		return "text"
	}
}

// FeedbackSubmission is the payload accepted from the patient submission
// endpoint. Sentiment may arrive either as the signed index or as a string
// label; the store only ever persists the index.
type FeedbackSubmission struct {
	PatientID        string `json:"patient_id"`
	HospitalID       string `json:"hospital_id"`
	DepartmentID     string `json:"department_id"`
	Topic            string `json:"topic"`
	SentimentIndex   *int   `json:"sentiment_index"`
	Sentiment        string `json:"sentiment"`
	ContentTypeIndex int    `json:"content_type_index"`
	TextContent      string `json:"text_content"`
	MediaContent     string `json:"media_content"`
}
