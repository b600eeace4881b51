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


// Package ai defines the language-model abstraction used by the search
// engine.
//
// The package contains only interfaces, configuration, and response
// utilities; concrete implementations live in subpackages:
//
//   - ai/openai: OpenAI-compatible chat completion via langchaingo
//   - ai/mock: test doubles with injectable behavior
//
// Every consumer depends on the Completer interface rather than a concrete
// client, so providers can be swapped without touching the scoring or
// selection code.
package ai
