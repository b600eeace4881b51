package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/taskscout/ai"
	"github.com/poiesic/taskscout/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer implements ai.Completer using OpenAI-compatible chat APIs.
type Completer struct {
	client llms.Model
	logger *slog.Logger
}

// newCompleter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client: client,
		logger: slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a new chat completer using the provided configuration.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// Complete sends the conversation turns to the model and returns the raw
// reply text of the first choice.
func (c *Completer) Complete(ctx context.Context, turns []core.ConversationTurn, maxTokens int, temperature float64) (string, error) {
	content := make([]llms.MessageContent, 0, len(turns))
	for _, turn := range turns {
		content = append(content, llms.MessageContent{
			Role: chatMessageType(turn.Speaker),
			Parts: []llms.ContentPart{
				llms.TextPart(turn.Content),
			},
		})
	}

	response, err := c.client.GenerateContent(ctx, content,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return "", ErrEmptyCompletion
	}

	return response.Choices[0].Content, nil
}

// chatMessageType maps a domain speaker to the langchaingo role.
func chatMessageType(speaker core.Speaker) llms.ChatMessageType {
	switch speaker {
	case core.SpeakerSystem:
		return llms.ChatMessageTypeSystem
	case core.SpeakerAI:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
