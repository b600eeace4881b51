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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/taskscout/core"
)

// Documents are serialized with MUS: string fields length-prefixed, the
// creation time as a varint of Unix microseconds.

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	createdAt := doc.CreatedAt.UnixMicro()
	size := ord.String.Size(doc.Id) +
		ord.String.Size(doc.CollectionId) +
		ord.String.Size(doc.Title) +
		ord.String.Size(doc.BodyText) +
		varint.Int64.Size(createdAt) +
		ord.Bool.Size(doc.Archived)

	buf := make([]byte, size)
	n := ord.String.Marshal(doc.Id, buf)
	n += ord.String.Marshal(doc.CollectionId, buf[n:])
	n += ord.String.Marshal(doc.Title, buf[n:])
	n += ord.String.Marshal(doc.BodyText, buf[n:])
	n += varint.Int64.Marshal(createdAt, buf[n:])
	ord.Bool.Marshal(doc.Archived, buf[n:])
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc := &core.Document{}
	n := 0

	id, sz, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	doc.Id = id
	n += sz

	collectionID, sz, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: collection id: %w", ErrSerializationFailed, err)
	}
	doc.CollectionId = collectionID
	n += sz

	title, sz, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: title: %w", ErrSerializationFailed, err)
	}
	doc.Title = title
	n += sz

	bodyText, sz, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: body text: %w", ErrSerializationFailed, err)
	}
	doc.BodyText = bodyText
	n += sz

	createdAt, sz, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: created at: %w", ErrSerializationFailed, err)
	}
	doc.CreatedAt = time.UnixMicro(createdAt).UTC()
	n += sz

	archived, _, err := ord.Bool.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: archived: %w", ErrSerializationFailed, err)
	}
	doc.Archived = archived

	return doc, nil
}
