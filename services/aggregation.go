package services

import (
	"sort"

	"hospital-feedback-server/models"
)

// SentimentCounts is the positive/neutral/negative split used by every
// dashboard aggregate
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total returns the number of records the counts were derived from
func (c SentimentCounts) Total() int {
	return c.Positive + c.Neutral + c.Negative
}

func (c *SentimentCounts) add(sentimentIndex int) {
	switch sentimentIndex {
	case models.SentimentPositive:
		c.Positive++
	case models.SentimentNegative:
		c.Negative++
	default:
		c.Neutral++
	}
}

// TrendPoint is one month of the sentiment trend, period formatted YYYY-MM (UTC)
type TrendPoint struct {
	Period   string `json:"period"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
}

// CountBySentiment buckets records by sentiment index. The three buckets
// always sum to len(records).
func CountBySentiment(records []models.Feedback) SentimentCounts {
	var counts SentimentCounts
	for _, record := range records {
		counts.add(record.SentimentIndex)
	}
	return counts
}

// TopicDistribution groups records by topic (exact, case-sensitive match)
func TopicDistribution(records []models.Feedback) map[string]int {
	distribution := make(map[string]int)
	for _, record := range records {
		distribution[record.Topic]++
	}
	return distribution
}

// DepartmentPerformance returns the sentiment split per department, the input
// for the stacked department comparison chart
func DepartmentPerformance(records []models.Feedback) map[string]SentimentCounts {
	performance := make(map[string]SentimentCounts)
	for _, record := range records {
		counts := performance[record.DepartmentID]
		counts.add(record.SentimentIndex)
		performance[record.DepartmentID] = counts
	}
	return performance
}

// MonthlyTrend groups records by the calendar month of their creation time
// (UTC), ascending. Months with no records are not synthesized.
func MonthlyTrend(records []models.Feedback) []TrendPoint {
	byPeriod := make(map[string]SentimentCounts)
	for _, record := range records {
		period := record.CreatedAt.UTC().Format("2006-01")
		counts := byPeriod[period]
		counts.add(record.SentimentIndex)
		byPeriod[period] = counts
	}

	periods := make([]string, 0, len(byPeriod))
	for period := range byPeriod {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	trend := make([]TrendPoint, 0, len(periods))
	for _, period := range periods {
		counts := byPeriod[period]
		trend = append(trend, TrendPoint{
			Period:   period,
			Positive: counts.Positive,
			Neutral:  counts.Neutral,
			Negative: counts.Negative,
		})
	}
	return trend
}
