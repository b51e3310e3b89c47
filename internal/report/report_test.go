package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/feedback-management-api/internal/models"
)

func TestFeedbackReport(t *testing.T) {
	now := time.Now()
	items := []models.Feedback{
		{
			ID:             1,
			Strengths:      "Ships reliably. Mentors new joiners over café chats.",
			AreasToImprove: "Write design docs earlier.",
			Sentiment:      models.SentimentPositive,
			CreatedAt:      now.Add(-48 * time.Hour),
			UpdatedAt:      now,
			Manager:        models.User{ID: 3, Name: "Maya"},
		},
		{
			ID:             2,
			Strengths:      "Calm under pressure.",
			AreasToImprove: "Delegate more.",
			Sentiment:      models.SentimentNeutral,
			IsAnonymous:    true,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}

	out, err := FeedbackReport("Alice", items)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}

func TestFeedbackReport_Empty(t *testing.T) {
	_, err := FeedbackReport("Alice", nil)
	require.Error(t, err)
}
