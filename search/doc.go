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

// Package search ranks sermon illustrations against a query.
//
// The Searcher type walks a chain of retrieval strategies until one
// produces candidates:
//   - Cosine similarity over locally stored embedding vectors
//   - An optional remote ranking service
//   - A uniform random sample as the last resort
//
// The package also provides a lexical overlap scorer for ranking
// illustrations against extracted sermon themes when no query text is
// available for embedding.
package search
