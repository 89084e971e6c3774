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

// Package ingest keeps the embedding store in step with the illustration
// library.
//
// The Engine diffs a refreshed source listing against the store, embeds
// only the items not yet present, and persists the merged result. A failed
// embedding drops that one item from the pass; it is retried on the next
// sync. Reconciliation, when enabled, additionally prunes records that
// disappeared from the listing and re-embeds records whose source text
// changed.
package ingest
