package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"hospital-feedback-server/config"
	"hospital-feedback-server/models"
)

// SentimentService calls the external sentiment scorer for text submissions
// that arrive without a precomputed sentiment. The core never runs a model
// in-process.
type SentimentService struct {
	serviceURL string
	client     *http.Client
}

type sentimentRequest struct {
	Text string `json:"text"`
}

type sentimentResponse struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// NewSentimentService creates a sentiment service client from the environment
// configuration
func NewSentimentService() *SentimentService {
	serviceURL := config.AppConfig.Sentiment.ServiceURL
	if serviceURL == "" {
		log.Printf("⚠️ SENTIMENT_SERVICE_URL not set, remote sentiment scoring will be disabled")
	}

	return &SentimentService{
		serviceURL: serviceURL,
		client: &http.Client{
			Timeout: time.Duration(config.AppConfig.Sentiment.TimeoutSeconds) * time.Second,
		},
	}
}

// Enabled reports whether a scorer endpoint is configured
func (s *SentimentService) Enabled() bool {
	return s.serviceURL != ""
}

// ScoreText posts the feedback text to the scorer and maps the returned label
// to the canonical signed index
func (s *SentimentService) ScoreText(text string) (int, error) {
	if s.serviceURL == "" {
		return 0, fmt.Errorf("sentiment service is not configured")
	}

	payload, err := json.Marshal(sentimentRequest{Text: text})
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Post(s.serviceURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to call sentiment service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("sentiment service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result sentimentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("failed to parse sentiment response: %w", err)
	}

	index, ok := models.ParseSentimentLabel(strings.ToLower(strings.TrimSpace(result.Sentiment)))
	if !ok {
		return 0, fmt.Errorf("sentiment service returned unknown label %q", result.Sentiment)
	}

	return index, nil
}
