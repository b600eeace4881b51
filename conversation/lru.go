package conversation

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/taskscout/core"
)

// DefaultCapacity is the key capacity of an LRUStore when none is given.
const DefaultCapacity = 256

// LRUStore is a bounded Store that evicts the least recently used
// conversation key when capacity is exceeded. Eviction drops the whole
// entry; a later call for that key starts a fresh dialogue.
type LRUStore struct {
	// mu serializes the read-modify-write in Append. The underlying cache
	// has its own lock, but Append must be atomic across Get and Add.
	mu    sync.Mutex
	cache *lru.Cache[Key, []core.ConversationTurn]
}

var _ Store = (*LRUStore)(nil)

// NewLRUStore creates a bounded store holding at most capacity keys.
// A capacity <= 0 uses DefaultCapacity.
func NewLRUStore(capacity int) (*LRUStore, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[Key, []core.ConversationTurn](capacity)
	if err != nil {
		return nil, err
	}
	return &LRUStore{cache: cache}, nil
}

// Get returns a copy of the turns recorded for key and marks the key as
// recently used.
func (s *LRUStore) Get(key Key) []core.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, _ := s.cache.Get(key)
	out := make([]core.ConversationTurn, len(entry))
	copy(out, entry)
	return out
}

// Append records turns at the end of the entry for key, creating the entry
// on first use and possibly evicting the oldest key.
func (s *LRUStore) Append(key Key, turns ...core.ConversationTurn) {
	if len(turns) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, _ := s.cache.Get(key)
	updated := make([]core.ConversationTurn, 0, len(entry)+len(turns))
	updated = append(updated, entry...)
	updated = append(updated, turns...)
	s.cache.Add(key, updated)
}

// Len returns the number of keys currently held.
func (s *LRUStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}
