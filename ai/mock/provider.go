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


package mock

import "github.com/poiesic/taskscout/ai"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	completer *MockCompleter
}

// NewMockProvider creates a new mock provider with a default mock completer.
//
// Returns ai.AIProvider interface for consistency with production
// constructors. Use GetMockCompleter() to access the concrete type for test
// assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		completer: NewMockCompleter(),
	}
}

// NewMockProviderWithCompleter creates a mock provider with a custom mock
// completer. This allows full control over the completion behavior.
func NewMockProviderWithCompleter(completer *MockCompleter) ai.AIProvider {
	return &MockProvider{
		completer: completer,
	}
}

// Completer returns the mock completer.
func (p *MockProvider) Completer() ai.Completer {
	return p.completer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockCompleter returns the underlying mock completer for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockCompleter() *MockCompleter {
	return p.completer
}
