package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hospital-feedback-server/models"
)

func newMockStore(t *testing.T) (*FeedbackStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewFeedbackStore(gdb), mock
}

func intPtr(i int) *int { return &i }

func validSubmission() models.FeedbackSubmission {
	return models.FeedbackSubmission{
		PatientID:        "42",
		HospitalID:       "H1",
		DepartmentID:     "cardiology",
		Topic:            "waiting time",
		SentimentIndex:   intPtr(models.SentimentPositive),
		ContentTypeIndex: models.ContentTypeText,
		TextContent:      "The staff were very helpful",
	}
}

func feedbackColumns() []string {
	return []string{
		"id", "patient_id", "hospital_id", "department_id", "topic",
		"sentiment_index", "content_type_index", "text_content",
		"media_content", "response", "response_status", "created_at", "updated_at",
	}
}

func TestCreateRejectsMissingHospital(t *testing.T) {
	s, mock := newMockStore(t)

	sub := validSubmission()
	sub.HospitalID = "  "

	_, err := s.Create(sub)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "hospital_id", ve.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsMissingDepartment(t *testing.T) {
	s, _ := newMockStore(t)

	sub := validSubmission()
	sub.DepartmentID = ""

	_, err := s.Create(sub)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "department_id", ve.Field)
}

func TestCreateRejectsOutOfDomainSentiment(t *testing.T) {
	s, _ := newMockStore(t)

	sub := validSubmission()
	sub.SentimentIndex = intPtr(2)

	_, err := s.Create(sub)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sentiment_index", ve.Field)
}

func TestCreateRejectsMissingSentiment(t *testing.T) {
	s, _ := newMockStore(t)

	sub := validSubmission()
	sub.SentimentIndex = nil
	sub.Sentiment = ""

	_, err := s.Create(sub)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sentiment_index", ve.Field)
}

func TestCreateRejectsDivergentSentimentForms(t *testing.T) {
	s, _ := newMockStore(t)

	sub := validSubmission()
	sub.SentimentIndex = intPtr(models.SentimentPositive)
	sub.Sentiment = "negative"

	_, err := s.Create(sub)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sentiment", ve.Field)
}

func TestCreateRejectsUnknownContentType(t *testing.T) {
	s, _ := newMockStore(t)

	sub := validSubmission()
	sub.ContentTypeIndex = 3

	_, err := s.Create(sub)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "content_type_index", ve.Field)
}

func TestCreateRejectsTextFeedbackWithoutText(t *testing.T) {
	s, _ := newMockStore(t)

	sub := validSubmission()
	sub.TextContent = "   "

	_, err := s.Create(sub)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "text_content", ve.Field)
}

func TestCreateRejectsVoiceFeedbackWithoutMedia(t *testing.T) {
	s, _ := newMockStore(t)

	sub := validSubmission()
	sub.ContentTypeIndex = models.ContentTypeVoice
	sub.MediaContent = ""

	_, err := s.Create(sub)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "media_content", ve.Field)
}

func TestCreatePersistsNormalizedRecord(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO "feedbacks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	sub := validSubmission()
	sub.SentimentIndex = nil
	sub.Sentiment = "Positive" // label form, normalized at the store boundary
	sub.MediaContent = "https://example.com/should-be-dropped"

	feedback, err := s.Create(sub)

	require.NoError(t, err)
	assert.Equal(t, uint(7), feedback.ID)
	assert.Equal(t, models.SentimentPositive, feedback.SentimentIndex)
	assert.Equal(t, "H1", feedback.HospitalID)
	// Text feedback has exactly one authoritative content field
	assert.Empty(t, feedback.MediaContent)
	assert.False(t, feedback.ResponseStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByHospitalScopesToTenant(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows(feedbackColumns()).
		AddRow(2, "42", "H1", "cardiology", "staff", 1, 0, "great", "", "", false, now, now).
		AddRow(1, "43", "H1", "emergency", "staff", -1, 0, "slow", "", "", false, now.Add(-time.Hour), now)

	mock.ExpectQuery(`SELECT \* FROM "feedbacks" WHERE hospital_id = \$1`).
		WithArgs("H1").
		WillReturnRows(rows)

	feedbacks, err := s.ListByHospital("H1")

	require.NoError(t, err)
	require.Len(t, feedbacks, 2)
	assert.Equal(t, "H1", feedbacks[0].HospitalID)
	assert.Equal(t, "H1", feedbacks[1].HospitalID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByHospitalUnknownTenantIsEmpty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "feedbacks" WHERE hospital_id = \$1`).
		WithArgs("H3").
		WillReturnRows(sqlmock.NewRows(feedbackColumns()))

	feedbacks, err := s.ListByHospital("H3")

	require.NoError(t, err)
	assert.Empty(t, feedbacks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDOutsideTenantIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	// The record exists under H2; an H1 admin must see NotFound, never a
	// tenant mismatch signal
	mock.ExpectQuery(`SELECT \* FROM "feedbacks" WHERE hospital_id = \$1`).
		WillReturnRows(sqlmock.NewRows(feedbackColumns()))

	_, err := s.GetByID("H1", 9)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachResponseRejectsEmptyText(t *testing.T) {
	s, mock := newMockStore(t)

	_, err := s.AttachResponse("H1", 5, "   \t ")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "response", ve.Field)
	// No mutation reaches the database
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachResponseMarksAnswered(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectExec(`UPDATE "feedbacks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "feedbacks" WHERE hospital_id = \$1`).
		WillReturnRows(sqlmock.NewRows(feedbackColumns()).
			AddRow(5, "42", "H1", "cardiology", "staff", 1, 0, "great", "", "thanks, we will improve", true, now, now))

	feedback, err := s.AttachResponse("H1", 5, "  thanks, we will improve  ")

	require.NoError(t, err)
	assert.True(t, feedback.ResponseStatus)
	assert.True(t, feedback.Answered())
	assert.Equal(t, "thanks, we will improve", feedback.Response)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachResponseUnknownRecordIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "feedbacks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.AttachResponse("H1", 99, "hello")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
