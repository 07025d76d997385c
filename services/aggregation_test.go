package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-feedback-server/models"
)

func feedbackAt(hospital, department, topic string, sentiment int, createdAt time.Time) models.Feedback {
	return models.Feedback{
		HospitalID:     hospital,
		DepartmentID:   department,
		Topic:          topic,
		SentimentIndex: sentiment,
		CreatedAt:      createdAt,
	}
}

func TestCountBySentiment(t *testing.T) {
	now := time.Now()
	records := []models.Feedback{
		feedbackAt("H1", "cardiology", "waiting time", models.SentimentPositive, now),
		feedbackAt("H1", "cardiology", "staff", models.SentimentNegative, now),
		feedbackAt("H1", "emergency", "staff", models.SentimentNeutral, now),
		feedbackAt("H1", "emergency", "staff", models.SentimentPositive, now),
	}

	counts := CountBySentiment(records)

	assert.Equal(t, 2, counts.Positive)
	assert.Equal(t, 1, counts.Neutral)
	assert.Equal(t, 1, counts.Negative)
	assert.Equal(t, len(records), counts.Total())
}

func TestCountBySentimentEmpty(t *testing.T) {
	counts := CountBySentiment(nil)

	assert.Equal(t, SentimentCounts{}, counts)
	assert.Equal(t, 0, counts.Total())
}

func TestTopicDistribution(t *testing.T) {
	now := time.Now()
	records := []models.Feedback{
		feedbackAt("H1", "cardiology", "waiting time", models.SentimentPositive, now),
		feedbackAt("H1", "cardiology", "waiting time", models.SentimentNegative, now),
		feedbackAt("H1", "emergency", "staff", models.SentimentNeutral, now),
		// Topic matching is case-sensitive
		feedbackAt("H1", "emergency", "Staff", models.SentimentNeutral, now),
	}

	distribution := TopicDistribution(records)

	assert.Equal(t, map[string]int{
		"waiting time": 2,
		"staff":        1,
		"Staff":        1,
	}, distribution)

	total := 0
	for _, count := range distribution {
		total += count
	}
	assert.Equal(t, len(records), total)
}

func TestDepartmentPerformance(t *testing.T) {
	now := time.Now()
	records := []models.Feedback{
		feedbackAt("H1", "cardiology", "staff", models.SentimentPositive, now),
		feedbackAt("H1", "cardiology", "staff", models.SentimentNegative, now),
		feedbackAt("H1", "emergency", "staff", models.SentimentNeutral, now),
	}

	performance := DepartmentPerformance(records)

	require.Len(t, performance, 2)
	assert.Equal(t, SentimentCounts{Positive: 1, Negative: 1}, performance["cardiology"])
	assert.Equal(t, SentimentCounts{Neutral: 1}, performance["emergency"])

	total := 0
	for _, counts := range performance {
		total += counts.Total()
	}
	assert.Equal(t, len(records), total)
}

func TestMonthlyTrend(t *testing.T) {
	march := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	january := time.Date(2025, time.January, 3, 8, 0, 0, 0, time.UTC)

	records := []models.Feedback{
		feedbackAt("H1", "cardiology", "staff", models.SentimentPositive, march),
		feedbackAt("H1", "cardiology", "staff", models.SentimentNegative, january),
		feedbackAt("H1", "emergency", "staff", models.SentimentPositive, january),
	}

	trend := MonthlyTrend(records)

	require.Len(t, trend, 2)
	// Chronologically ascending, no synthesized empty February
	assert.Equal(t, TrendPoint{Period: "2025-01", Positive: 1, Negative: 1}, trend[0])
	assert.Equal(t, TrendPoint{Period: "2025-03", Positive: 1}, trend[1])
}

func TestMonthlyTrendGroupsByUTCMonth(t *testing.T) {
	// 23:30 on Jan 31 in UTC+2 is still January locally but February in UTC
	loc := time.FixedZone("UTC+2", 2*60*60)
	createdAt := time.Date(2025, time.February, 1, 1, 30, 0, 0, loc)

	trend := MonthlyTrend([]models.Feedback{
		feedbackAt("H1", "cardiology", "staff", models.SentimentNeutral, createdAt),
	})

	require.Len(t, trend, 1)
	assert.Equal(t, "2025-01", trend[0].Period)
}

func TestMonthlyTrendEmpty(t *testing.T) {
	trend := MonthlyTrend(nil)
	assert.Empty(t, trend)
}
