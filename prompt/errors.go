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


package prompt

import "errors"

var (
	// ErrUnknownType is returned when no template exists for a type.
	ErrUnknownType = errors.New("unknown prompt type")

	// ErrUnresolvedPlaceholder is returned when a template placeholder has
	// no value after substitution. This is a configuration error and is
	// never retried.
	ErrUnresolvedPlaceholder = errors.New("unresolved prompt placeholder")
)

// IsConfigError reports whether err is a prompt configuration error.
// Configuration errors are fatal to a search; they are never absorbed by a
// fallback path.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrUnknownType) || errors.Is(err, ErrUnresolvedPlaceholder)
}
