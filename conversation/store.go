package conversation

import (
	"sync"

	"github.com/poiesic/taskscout/core"
)

// Key identifies one accumulating dialogue with the language model.
type Key struct {
	UserId       string
	CollectionId string
}

// Store is a keyed, append-only history of conversation turns. The engine
// reads an entry before a language-model call and appends the exchanged
// turns only after a successful response; a failed call never mutates an
// entry. Implementations must be safe for concurrent use, though concurrent
// appends to the same key may interleave at turn granularity.
type Store interface {
	// Get returns a copy of the turns recorded for key, oldest first.
	// A key with no history returns an empty slice.
	Get(key Key) []core.ConversationTurn

	// Append records turns at the end of the entry for key, creating the
	// entry on first use.
	Append(key Key, turns ...core.ConversationTurn)
}

// MemoryStore is an unbounded in-memory Store. Entries live for the
// lifetime of the process; callers that need eviction should use LRUStore.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Key][]core.ConversationTurn
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty unbounded store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[Key][]core.ConversationTurn),
	}
}

// Get returns a copy of the turns recorded for key.
func (s *MemoryStore) Get(key Key) []core.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entries[key]
	out := make([]core.ConversationTurn, len(entry))
	copy(out, entry)
	return out
}

// Append records turns at the end of the entry for key.
func (s *MemoryStore) Append(key Key, turns ...core.ConversationTurn) {
	if len(turns) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append(s.entries[key], turns...)
}

// Len returns the number of keys with recorded history.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
