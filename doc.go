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

// Package omnisearch fans one free-text search query out to many search
// services.
//
// A query such as
//
//	project:core -status:done created:2024-01-01-2024-06-30 "race condition"
//
// is parsed once per source with the keywords and ranges that source
// understands (package query), optionally translated into the source's
// native syntax such as Jira JQL or Gmail search (package translate), and
// searched concurrently (package aggregate). Searches are recorded in a
// local history (packages storage and storage/badger).
//
// Engine wires these together from a YAML configuration (package config):
//
//	cfg, err := config.Load("omnisearch.yaml")
//	engine, err := omnisearch.Open(cfg)
//	defer engine.Close()
//
//	agg, err := engine.NewAggregator(sources)
//	defer agg.Close()
//	resp, err := agg.Search(ctx, "project:core race")
package omnisearch
