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


// Package openai implements the ai interfaces against OpenAI-compatible
// chat completion APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// The implementation uses langchaingo's openai client and works with any
// endpoint that speaks the /v1/chat/completions protocol. Replies are
// returned verbatim; JSON cleanup for structured calls lives in the parent
// ai package so every consumer applies the same repair pass.
package openai
