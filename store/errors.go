// Copyright 2026 Greation Labs
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


package store

import "errors"

var (
	// ErrBackendRequired is returned when a blob backend is not provided.
	ErrBackendRequired = errors.New("blob backend required")

	// ErrModelRequired is returned when no embedding model identity is provided.
	ErrModelRequired = errors.New("embedding model identity required")

	// ErrModelMismatch indicates the persisted document was built with a
	// different embedding model than the store is configured for. Mixing
	// embedding spaces makes similarity scores meaningless, so the load is
	// refused and the caller should rebuild.
	ErrModelMismatch = errors.New("persisted embeddings use a different model")

	// ErrUnsupportedVersion indicates a persisted document schema this
	// build does not understand.
	ErrUnsupportedVersion = errors.New("unsupported document version")
)
