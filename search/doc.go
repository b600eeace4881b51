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


// Package search orchestrates task document searches.
//
// The Selector type runs a fixed sequence per search:
//   - Fetch every candidate document in the query's collection
//   - Enhance the query with extracted keywords
//   - Ask the language model to select and score the best matches
//   - On any model-path failure, rank candidates deterministically instead
//
// The model path is best-effort: its failures are absorbed and only visible
// in the response's processing trace. A failed candidate fetch is the one
// total failure mode and surfaces as a wrapped ErrSearchFailed.
package search
