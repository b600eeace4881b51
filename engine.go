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


package taskscout

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/taskscout/ai"
	"github.com/poiesic/taskscout/ai/openai"
	"github.com/poiesic/taskscout/conversation"
	"github.com/poiesic/taskscout/core"
	"github.com/poiesic/taskscout/enhance"
	"github.com/poiesic/taskscout/ingest"
	"github.com/poiesic/taskscout/prompt"
	"github.com/poiesic/taskscout/search"
	"github.com/poiesic/taskscout/storage"
	"github.com/poiesic/taskscout/storage/badger"
)

// Engine is the top-level search engine over a task document store.
type Engine struct {
	backend       *badger.Backend
	documents     storage.DocumentRepository
	provider      ai.AIProvider
	prompts       *prompt.Store
	conversations conversation.Store
	enhancer      *enhance.Enhancer
	selector      *search.Selector
	logger        *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig      *ai.Config
	provider      ai.AIProvider
	conversations conversation.Store
	inMemory      bool
}

// WithAIConfig sets the language-model connection settings.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider sets a pre-built AI provider, bypassing the configured
// connection settings. Intended for tests and embedding scenarios.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithConversationStore sets the conversation history store.
// Default is a bounded LRU store.
func WithConversationStore(store conversation.Store) EngineOption {
	return func(o *engineOptions) {
		if store != nil {
			o.conversations = store
		}
	}
}

// WithInMemory keeps the document store entirely in memory, ignoring the
// file path. Intended for tests.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// New creates an engine backed by a document store at filePath.
func New(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	documents := badger.NewDocumentRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			documents.Close()
			backend.Close()
			return nil, err
		}
	}

	prompts := prompt.NewStore()

	conversations := options.conversations
	if conversations == nil {
		lruStore, err := conversation.NewLRUStore(conversation.DefaultCapacity)
		if err != nil {
			provider.Close()
			documents.Close()
			backend.Close()
			return nil, err
		}
		conversations = lruStore
	}

	enhancer, err := enhance.NewEnhancer(provider.Completer(), prompts)
	if err != nil {
		provider.Close()
		documents.Close()
		backend.Close()
		return nil, err
	}

	selector, err := search.NewSelector(documents, provider, prompts, conversations, enhancer)
	if err != nil {
		provider.Close()
		documents.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:       backend,
		documents:     documents,
		provider:      provider,
		prompts:       prompts,
		conversations: conversations,
		enhancer:      enhancer,
		selector:      selector,
		logger:        slog.Default(),
	}, nil
}

// FindTasks runs one search against the document store.
func (e *Engine) FindTasks(ctx context.Context, query *core.Query) (*core.SearchResponse, error) {
	return e.selector.FindTasks(ctx, query)
}

// ParseTargetDate resolves a natural-language date expression ("yesterday",
// "3 days ago", a free-form phrase) to a concrete time. Returns nil when
// the expression cannot be resolved.
func (e *Engine) ParseTargetDate(ctx context.Context, input string) (*time.Time, error) {
	return e.enhancer.ParseDate(ctx, input)
}

// DocumentRepository exposes the underlying document store.
func (e *Engine) DocumentRepository() storage.DocumentRepository {
	return e.documents
}

// NewLoader creates a bulk document loader writing into the engine's store.
func (e *Engine) NewLoader(opts ...ingest.Option) (*ingest.Loader, error) {
	return ingest.NewLoader(e.documents, opts...)
}

func (e *Engine) Close() error {
	// Close AI provider first
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.documents.Close(); err != nil {
		e.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
