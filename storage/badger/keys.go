package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/taskscout/core"
)

// Key prefixes for different data types
const (
	documentPrefix     = "taskdoc"
	documentDatePrefix = "taskdate"
)

// makeDocumentKey generates the primary key for a document by store ID.
func makeDocumentKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", documentPrefix, id))
}

// makeDateKey generates a composite key for the per-collection date index.
// Format: prefix:collection:timestamp:idhash, with timestamp and hash
// written BigEndian so lexicographic iteration is chronological.
func makeDateKey(collectionID string, createdAt time.Time, documentID string) []byte {
	prefix := []byte(documentDatePrefix + ":" + collectionID + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(documentID)))
	return buf
}

// makePartialDateKey generates a partial key for date range scans.
func makePartialDateKey(collectionID string, createdAt time.Time) []byte {
	prefix := []byte(documentDatePrefix + ":" + collectionID + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	return buf
}

// makeDatePrefix generates the iteration prefix for a collection's date index.
func makeDatePrefix(collectionID string) []byte {
	return []byte(documentDatePrefix + ":" + collectionID + ":")
}
