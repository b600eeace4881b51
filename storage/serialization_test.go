package storage

import (
	"testing"
	"time"

	"github.com/poiesic/taskscout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentSerialization(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		doc := &core.Document{
			Id:           "page-8842",
			CollectionId: "workspace-tasks",
			Title:        "Fix login page",
			BodyText:     "the login form rejects valid users\nlabels: bug, auth",
			CreatedAt:    time.Date(2025, 3, 14, 9, 30, 15, 123456000, time.UTC),
			Archived:     true,
		}

		restored, err := UnmarshalDocument(MarshalDocument(doc))
		require.NoError(t, err)
		assert.Equal(t, doc, restored)
	})

	t.Run("zero value fields", func(t *testing.T) {
		doc := &core.Document{CreatedAt: time.Unix(0, 0).UTC()}
		restored, err := UnmarshalDocument(MarshalDocument(doc))
		require.NoError(t, err)
		assert.Equal(t, doc.Id, restored.Id)
		assert.True(t, doc.CreatedAt.Equal(restored.CreatedAt))
		assert.False(t, restored.Archived)
	})

	t.Run("truncated data fails", func(t *testing.T) {
		doc := &core.Document{
			Id:           "page-1",
			CollectionId: "c",
			Title:        "t",
			CreatedAt:    time.Now().UTC(),
		}
		data := MarshalDocument(doc)
		_, err := UnmarshalDocument(data[:3])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}
