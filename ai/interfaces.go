package ai

import (
	"context"

	"github.com/poiesic/taskscout/core"
)

// Completer performs a single chat-style completion against a language model.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends the conversation turns to the model and returns the
	// raw text of the model's reply. The engine treats the call as
	// synchronous-looking but remote; it does not depend on streaming.
	// Returns an error if the call fails or the model returns no content.
	Complete(ctx context.Context, turns []core.ConversationTurn, maxTokens int, temperature float64) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Completer instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Completer returns the chat completion service.
	// The returned Completer is safe for concurrent use.
	Completer() Completer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
