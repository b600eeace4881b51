package ingest

import (
	"strings"
	"time"

	"github.com/poiesic/taskscout/core"
)

// DocumentSpec is the structured form of a task document as supplied by a
// caller or a seed file. BodyText is not accepted directly; it is derived
// from the structured fields so that scoring sees a consistent shape.
type DocumentSpec struct {
	Id           string    `json:"id"`
	CollectionId string    `json:"collection_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Notes        []string  `json:"notes,omitempty"`
	Labels       []string  `json:"labels,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Archived     bool      `json:"archived,omitempty"`
}

// toDocument derives the stored document from the spec. Sections are
// newline-joined in a fixed order: description, notes, then labels.
func (s *DocumentSpec) toDocument() *core.Document {
	var sections []string
	if text := strings.TrimSpace(s.Description); text != "" {
		sections = append(sections, text)
	}
	for _, note := range s.Notes {
		if text := strings.TrimSpace(note); text != "" {
			sections = append(sections, text)
		}
	}
	if len(s.Labels) > 0 {
		labels := make([]string, 0, len(s.Labels))
		for _, label := range s.Labels {
			if text := strings.TrimSpace(label); text != "" {
				labels = append(labels, text)
			}
		}
		if len(labels) > 0 {
			sections = append(sections, strings.Join(labels, " "))
		}
	}

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return &core.Document{
		Id:           s.Id,
		CollectionId: s.CollectionId,
		Title:        s.Title,
		BodyText:     strings.Join(sections, "\n"),
		CreatedAt:    createdAt,
		Archived:     s.Archived,
	}
}
