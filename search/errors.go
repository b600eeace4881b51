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


package search

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrPromptStoreRequired is returned when a prompt store is not provided.
	ErrPromptStoreRequired = errors.New("prompt store required")

	// ErrConversationStoreRequired is returned when a conversation store is not provided.
	ErrConversationStoreRequired = errors.New("conversation store required")

	// ErrEnhancerRequired is returned when a query enhancer is not provided.
	ErrEnhancerRequired = errors.New("query enhancer required")

	// ErrSearchFailed wraps a failed candidate fetch. It marks a total
	// search failure, as opposed to the model path failing, which is
	// recovered through the fallback ranking.
	ErrSearchFailed = errors.New("search failed")
)
