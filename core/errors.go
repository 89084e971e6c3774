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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates an IllustrationRecord failed validation.
	ErrInvalidRecord = errors.New("invalid illustration record")

	// ErrInvalidEmbeddingRecord indicates an EmbeddingRecord failed validation.
	ErrInvalidEmbeddingRecord = errors.New("invalid embedding record")

	// ErrEmptyID indicates the Id field is empty.
	ErrEmptyID = errors.New("record id cannot be empty")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("record title cannot be empty")

	// ErrEmptyEmbedding indicates the Embedding field is empty.
	ErrEmptyEmbedding = errors.New("embedding cannot be empty")

	// ErrUnknownSegment indicates an unrecognized audience segment value.
	ErrUnknownSegment = errors.New("unknown audience segment")
)
