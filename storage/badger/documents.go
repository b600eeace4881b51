package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/taskscout/core"
	"github.com/poiesic/taskscout/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) *DocumentRepository {
	return &DocumentRepository{backend: backend}
}

// Close is a no-op; the repository shares the backend's lifecycle.
func (r *DocumentRepository) Close() error {
	return nil
}

// AddDocuments adds one or more documents to storage.
func (r *DocumentRepository) AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error) {
	for _, doc := range docs {
		if err := core.ValidateDocument(doc); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			// Replacing an existing document must not leave a stale
			// date-index entry behind
			old, err := r.readDocument(tx, makeDocumentKey(doc.Id))
			if err != nil {
				return err
			}
			if old != nil && !old.CreatedAt.Equal(doc.CreatedAt) {
				if err := tx.Delete(makeDateKey(old.CollectionId, old.CreatedAt, old.Id)); err != nil {
					return err
				}
			}

			key := makeDocumentKey(doc.Id)
			if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
				return err
			}

			dateKey := makeDateKey(doc.CollectionId, doc.CreatedAt, doc.Id)
			if err := tx.Set(dateKey, []byte(doc.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// GetDocument retrieves a single document by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id string) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// FetchCandidates retrieves every document in a collection, ordered by
// creation time descending.
func (r *DocumentRepository) FetchCandidates(ctx context.Context, collectionID string) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDatePrefix(collectionID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			doc, err := r.readIndexedDocument(tx, iter.Item())
			if err != nil {
				return err
			}
			if doc != nil {
				results = append(results, doc)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// The date index iterates ascending; candidates are served newest first.
	slices.Reverse(results)
	return results, nil
}

// GetDocumentsByDateRange retrieves documents in a collection created
// within [start, end), ordered by creation time ascending.
func (r *DocumentRepository) GetDocumentsByDateRange(ctx context.Context, collectionID string, start, end time.Time) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDateKey(collectionID, start)
		endKey := makePartialDateKey(collectionID, end)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDatePrefix(collectionID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) >= 0 {
				break
			}

			doc, err := r.readIndexedDocument(tx, iter.Item())
			if err != nil {
				return err
			}
			if doc != nil {
				results = append(results, doc)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteDocuments removes documents by their IDs.
func (r *DocumentRepository) DeleteDocuments(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeDocumentKey(id)

			// Read record to get metadata for index cleanup
			doc, err := r.readDocument(tx, key)
			if err != nil {
				return err
			}
			if doc == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeDateKey(doc.CollectionId, doc.CreatedAt, doc.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readDocument reads and unmarshals a document by primary key.
// Returns (nil, nil) when the key does not exist.
func (r *DocumentRepository) readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalDocument(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// readIndexedDocument resolves a date-index entry to its full document.
// Returns (nil, nil) when the primary record is gone.
func (r *DocumentRepository) readIndexedDocument(tx *badger.Txn, item *badger.Item) (*core.Document, error) {
	var id string
	if err := item.Value(func(val []byte) error {
		id = string(val)
		return nil
	}); err != nil {
		return nil, err
	}
	return r.readDocument(tx, makeDocumentKey(id))
}
