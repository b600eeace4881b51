package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// DefaultMaxResults is the result limit applied when a query does not set one.
const DefaultMaxResults = 10

// ID is a fixed-width internal identifier derived from document content.
// Documents keep their store-assigned string identifiers; IDs are used
// where fixed-width keys are needed (composite index keys, hashing).
type ID uint64

// IDFromContent generates a deterministic ID from text using BLAKE2b hashing.
// Identical content always produces the identical ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Query describes one search request against a document collection.
type Query struct {
	Description    string
	TargetDate     *time.Time // Optional; when set, date proximity participates in ranking
	UserId         string
	CollectionId   string
	MaxResults     int // 0 means DefaultMaxResults
	IncludeContent bool
}

// Limit returns the effective result limit for the query.
func (q *Query) Limit() int {
	if q.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return q.MaxResults
}

// Document is a read-only snapshot of a task-like record from the document
// store. BodyText is derived from the store's structured fields at ingest
// time; the engine never mutates a Document during a search.
type Document struct {
	Id           string
	CollectionId string
	Title        string
	BodyText     string
	CreatedAt    time.Time
	Archived     bool
}

// ScoredDocument pairs a document with its ranking scores. Instances are
// never mutated after creation; re-ranking produces new instances.
type ScoredDocument struct {
	Document           *Document
	RelevanceScore     float64 // [0,1]
	DateProximityScore float64 // [0,1]
	CombinedScore      float64 // [0,1]
	Justification      string  // Populated only on the model-assisted path
}

// DateAnalysis is the transient result of resolving a date expression.
type DateAnalysis struct {
	TargetDate     time.Time
	Confidence     float64 // [0,1]
	Interpretation string
}

// Speaker identifies the source of a conversation turn.
type Speaker int

const (
	// SpeakerHuman represents the querying user.
	SpeakerHuman Speaker = iota + 1
	// SpeakerAI represents the language model.
	SpeakerAI
	// SpeakerSystem represents instruction turns prepended by the engine.
	SpeakerSystem
)

// ConversationTurn is one role-tagged message in an accumulating dialogue
// with the language model.
type ConversationTurn struct {
	Speaker   Speaker
	Content   string
	Timestamp time.Time
}

// SearchResponse is the result of one FindTasks invocation.
type SearchResponse struct {
	Results             []*ScoredDocument
	TotalCandidateCount int
	Elapsed             time.Duration
	Query               *Query
	// Trace is an ordered log of human-readable stage descriptions. It is
	// the only place a caller can observe that the search degraded to the
	// fallback path.
	Trace []string
}

// TraceContains reports whether any trace line contains the substring.
func (r *SearchResponse) TraceContains(substr string) bool {
	for _, line := range r.Trace {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
