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


// Package blob defines the persistent blob store contract the embedding
// store persists through: one opaque key mapped to one whole document,
// read and replaced wholesale. Backends live in subpackages (blob/fs for
// the local filesystem, blob/s3 for AWS S3).
package blob

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no document exists under the requested key.
	// A missing document is a valid state: it triggers the one-time
	// bulk-build workflow rather than an error path.
	ErrNotFound = errors.New("blob not found")
)

// Backend reads and replaces whole documents under opaque keys.
// Store must be atomic from the caller's perspective: a reader never
// observes a partially written document. Write failures must be surfaced,
// never swallowed, because losing freshly computed embeddings wastes paid
// compute.
type Backend interface {
	// Fetch returns the whole document stored under key.
	// Returns ErrNotFound when no document exists.
	Fetch(ctx context.Context, key string) ([]byte, error)

	// Store replaces the document under key with data.
	Store(ctx context.Context, key string, data []byte) error
}
