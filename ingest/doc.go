// Package ingest loads task documents into storage.
//
// The Loader type derives each document's body text from its structured
// fields (description, notes, labels), validates the result, and writes
// documents in parallel batches using a worker pool. Failed batches are
// logged; the first write error is reported once the load finishes.
package ingest
