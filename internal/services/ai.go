package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/feedback-management-api/internal/models"
)

type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithConfig allows pointing the client at a custom endpoint.
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// SummarizeFeedback asks the model for a short digest of the feedback an
// employee received. Anonymous entries are sent without the author.
func (s *AIService) SummarizeFeedback(ctx context.Context, employeeName string, items []models.Feedback) (string, error) {
	if s == nil || s.client == nil {
		return "", ErrAIServiceNotConfigured
	}

	var b strings.Builder
	for i, fb := range items {
		fmt.Fprintf(&b, "Entry %d (%s, %s)\nStrengths: %s\nAreas to improve: %s\n\n",
			i+1,
			fb.CreatedAt.Format("2006-01-02"),
			fb.Sentiment,
			fb.Strengths,
			fb.AreasToImprove,
		)
	}

	prompt := fmt.Sprintf(`You are helping a manager prepare for a one-on-one meeting.
Summarize the performance feedback below for %s in at most five sentences.
Mention recurring strengths, recurring areas to improve, and how the sentiment has changed over time.
Reply with plain text only.

Feedback:
%s`, employeeName, b.String())

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
