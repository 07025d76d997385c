package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentimentLabelMapping(t *testing.T) {
	assert.Equal(t, "positive", SentimentLabel(SentimentPositive))
	assert.Equal(t, "neutral", SentimentLabel(SentimentNeutral))
	assert.Equal(t, "negative", SentimentLabel(SentimentNegative))
}

func TestParseSentimentLabel(t *testing.T) {
	for _, index := range []int{SentimentNegative, SentimentNeutral, SentimentPositive} {
		parsed, ok := ParseSentimentLabel(SentimentLabel(index))
		assert.True(t, ok)
		assert.Equal(t, index, parsed)
	}

	_, ok := ParseSentimentLabel("ecstatic")
	assert.False(t, ok)
}

func TestContentTypeLabel(t *testing.T) {
	assert.Equal(t, "text", ContentTypeLabel(ContentTypeText))
	assert.Equal(t, "voice", ContentTypeLabel(ContentTypeVoice))
	assert.Equal(t, "video", ContentTypeLabel(ContentTypeVideo))
}

func TestAnswered(t *testing.T) {
	feedback := Feedback{}
	assert.False(t, feedback.Answered())

	feedback.Response = "thank you"
	feedback.ResponseStatus = true
	assert.True(t, feedback.Answered())

	// Response state is never inferred from the text alone
	feedback.ResponseStatus = false
	assert.False(t, feedback.Answered())
}
