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

import "errors"

// Domain validation errors
var (
	// ErrInvalidQuery indicates a Query failed validation.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyDocumentId indicates the document Id field is empty.
	ErrEmptyDocumentId = errors.New("document id cannot be empty")

	// ErrEmptyTitle indicates the document Title field is empty.
	ErrEmptyTitle = errors.New("document title cannot be empty")

	// ErrEmptyCollectionId indicates the CollectionId field is empty.
	ErrEmptyCollectionId = errors.New("collection id cannot be empty")

	// ErrEmptyUserId indicates the query UserId field is empty.
	ErrEmptyUserId = errors.New("user id cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
