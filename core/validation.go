// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"time"
)

// ValidateQuery validates a Query according to domain rules.
//
// Validation rules:
//   - UserId must not be empty
//   - CollectionId must not be empty
//
// NOT validated:
//   - Description (an empty description is a legal degenerate query that
//     returns results ranked by the remaining signals)
//   - TargetDate (absence switches ranking to pure relevance)
//   - MaxResults (0 means the default limit)
func ValidateQuery(query *Query) error {
	if query == nil {
		return fmt.Errorf("%w: query is nil", ErrInvalidQuery)
	}

	if query.UserId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyUserId)
	}

	if query.CollectionId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyCollectionId)
	}

	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Title must not be empty
//   - CollectionId must not be empty
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - BodyText (documents without structured body fields derive an empty
//     body and are still rankable by title)
//   - Archived (both states are valid)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentId)
	}

	if doc.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}

	if doc.CollectionId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyCollectionId)
	}

	if !IsValidTimestamp(doc.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
