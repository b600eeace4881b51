package mock

import (
	"context"
	"sync"

	"github.com/poiesic/taskscout/core"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, returns an empty JSON object.
	CompleteFunc func(ctx context.Context, turns []core.ConversationTurn, maxTokens int, temperature float64) (string, error)

	mu        sync.Mutex
	callCount int
	lastTurns []core.ConversationTurn
}

// NewMockCompleter creates a mock completer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockCompleter().
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete records the call and delegates to CompleteFunc if set.
func (m *MockCompleter) Complete(ctx context.Context, turns []core.ConversationTurn, maxTokens int, temperature float64) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastTurns = turns
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, turns, maxTokens, temperature)
	}

	return "{}", nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastTurns returns the conversation turns from the most recent call.
func (m *MockCompleter) LastTurns() []core.ConversationTurn {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTurns
}
