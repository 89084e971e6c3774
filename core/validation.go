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

import "fmt"

// ValidateIllustrationRecord validates an IllustrationRecord.
//
// Validation rules:
//   - Id must not be empty (it is the store's key)
//   - Title must not be empty
//
// NOT validated (optional by contract):
//   - Summary, Subjects, Emotions, SourceURL, Preacher
func ValidateIllustrationRecord(record *IllustrationRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyID)
	}

	if record.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyTitle)
	}

	return nil
}

// ValidateEmbeddingRecord validates an EmbeddingRecord.
//
// Validation rules:
//   - the embedded IllustrationRecord must be valid
//   - Embedding must not be empty
func ValidateEmbeddingRecord(record *EmbeddingRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidEmbeddingRecord)
	}

	if err := ValidateIllustrationRecord(&record.IllustrationRecord); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEmbeddingRecord, err)
	}

	if len(record.Embedding) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEmbeddingRecord, ErrEmptyEmbedding)
	}

	return nil
}
