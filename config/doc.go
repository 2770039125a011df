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

// Package config loads omnisearch configuration from YAML.
//
// A configuration names the search sources to fan queries out to, the
// vocabulary each source's parser recognizes, and the ambient settings of the
// aggregator (pool size, per-source timeout, log level, history location).
//
//	history_path: ~/.omnisearch/history
//	pool_size: 4
//	timeout: 10s
//	log_level: info
//	sources:
//	  - id: jira
//	    dialect: jql
//	  - id: notes
//	    keywords: [tag, author]
//	    ranges: [date]
//
// A source that names a dialect and leaves keywords and ranges unset uses the
// dialect's built-in vocabulary.
package config
