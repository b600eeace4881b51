package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/taskscout/core"
	"github.com/poiesic/taskscout/storage"
)

// defaultBatchSize is the number of documents written per storage
// transaction.
const defaultBatchSize = 64

// Loader writes task documents into storage in parallel batches.
type Loader struct {
	documents storage.DocumentRepository
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size for concurrent batch writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}

		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithBatchSize sets the number of documents per storage write.
func WithBatchSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		l.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a new loader.
func NewLoader(documents storage.DocumentRepository, opts ...Option) (*Loader, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		documents: documents,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Release()
			return nil, err
		}
	}

	return l, nil
}

// Load derives documents from the specs and writes them in parallel
// batches. Every spec is validated before any write starts; the first
// invalid spec aborts the whole load. Returns the number of documents
// stored. Batches that fail to write are logged, and the first write error
// is returned after all batches finish.
func (l *Loader) Load(ctx context.Context, specs ...DocumentSpec) (int, error) {
	docs := make([]*core.Document, len(specs))
	for i := range specs {
		doc := specs[i].toDocument()
		if err := core.ValidateDocument(doc); err != nil {
			return 0, err
		}
		docs[i] = doc
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		stored   int
		firstErr error
	)

	for start := 0; start < len(docs); start += l.batchSize {
		batch := docs[start:min(start+l.batchSize, len(docs))]

		wg.Add(1)
		if err := l.pool.Submit(func() {
			defer wg.Done()

			added, err := l.documents.AddDocuments(ctx, batch...)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				l.logger.Error("batch write failed", "batchSize", len(batch), "err", err)
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			stored += len(added)
		}); err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	}

	wg.Wait()
	return stored, firstErr
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}
