package storage

import (
	"context"
	"time"

	"github.com/poiesic/taskscout/core"
)

// DocumentRepository provides operations for managing task documents.
// Implementations must be thread-safe and support concurrent access.
//
// The search engine only consumes FetchCandidates; the remaining operations
// exist for ingestion and housekeeping.
type DocumentRepository interface {
	// AddDocuments adds one or more documents to storage.
	// Documents are validated before writing; the first invalid document
	// aborts the batch. Returns the stored documents.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by its store ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id string) (*core.Document, error)

	// FetchCandidates retrieves every document in a collection, ordered by
	// creation time descending. Archived documents are included; the
	// search layer decides their fate.
	FetchCandidates(ctx context.Context, collectionID string) ([]*core.Document, error)

	// GetDocumentsByDateRange retrieves documents in a collection created
	// within [start, end), ordered by creation time ascending.
	GetDocumentsByDateRange(ctx context.Context, collectionID string, start, end time.Time) ([]*core.Document, error)

	// DeleteDocuments removes documents by their IDs.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, ids ...string) error

	// Close closes the storage backend and releases resources.
	Close() error
}
