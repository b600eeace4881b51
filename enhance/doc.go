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


// Package enhance expands search input before ranking.
//
// Keyword extraction and date analysis each try the language model first
// and degrade to a deterministic local resolution: a stop-word tokenizer
// for keywords, and fixed relative-date forms (today, yesterday, tomorrow,
// last week, this week, "N days ago") resolved with calendar-day arithmetic
// for dates. Failures on the model path are absorbed; the only error the
// package surfaces is a prompt template that fails substitution.
package enhance
