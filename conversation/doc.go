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


// Package conversation stores per-user, per-collection dialogue history for
// language-model calls.
//
// The cache is injected into the search engine as an explicit collaborator
// rather than held as module state, so its lifetime and eviction policy are
// a caller decision. Two implementations are provided: MemoryStore keeps
// every key for the process lifetime; LRUStore bounds the key count and
// evicts whole entries least-recently-used first.
package conversation
