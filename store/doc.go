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


// Package store implements the embedding store: the in-memory working set
// of illustration embeddings, persisted wholesale as a single JSON
// document through a blob backend.
//
// The store is deliberately a single-writer structure. Concurrent writers
// on a shared backend race under last-write-wins; deployments sharing one
// document across processes need an optimistic concurrency check at the
// backend level.
package store
