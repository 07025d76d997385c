package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-feedback-server/config"
	"hospital-feedback-server/models"
)

func newTestSentimentService(t *testing.T, handler http.HandlerFunc) *SentimentService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("SENTIMENT_SERVICE_URL", server.URL)
	config.Load()

	return NewSentimentService()
}

func TestScoreTextMapsLabelToIndex(t *testing.T) {
	service := newTestSentimentService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sentiment": "Positive", "score": 0.93}`))
	})

	require.True(t, service.Enabled())

	index, err := service.ScoreText("the nurses were wonderful")

	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, index)
}

func TestScoreTextRejectsUnknownLabel(t *testing.T) {
	service := newTestSentimentService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sentiment": "confused"}`))
	})

	_, err := service.ScoreText("hmm")

	assert.Error(t, err)
}

func TestScoreTextSurfacesUpstreamFailure(t *testing.T) {
	service := newTestSentimentService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	})

	_, err := service.ScoreText("anything")

	assert.Error(t, err)
}

func TestScoreTextUnconfigured(t *testing.T) {
	t.Setenv("SENTIMENT_SERVICE_URL", "")
	config.Load()

	service := NewSentimentService()

	assert.False(t, service.Enabled())
	_, err := service.ScoreText("anything")
	assert.Error(t, err)
}
