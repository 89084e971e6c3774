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

// Package sermonkit is an AI-assisted sermon preparation toolkit. It
// keeps a local vector index of a sermon illustration library in sync
// with its source, retrieves relevant illustrations for a draft by
// semantic similarity, and generates draft analysis, editorial feedback,
// and audience-tailored study guides through an OpenAI-compatible model
// endpoint.
package sermonkit
