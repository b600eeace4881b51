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


// Package storage defines the document repository abstraction and its
// serialization.
//
// The search engine treats the repository as an external collaborator: it
// only reads candidates, and a fetch failure is the one unrecoverable error
// in a search. The embedded BadgerDB implementation in the badger
// subpackage backs the CLI and the test suite; deployments that keep
// documents in a remote workspace API implement DocumentRepository against
// that service instead.
package storage
