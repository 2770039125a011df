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

package translate

import (
	"strings"

	"github.com/poiesic/omnisearch/query"
)

// clauseDialect renders SQL-like "field op value" clauses joined with AND,
// as used by Atlassian's JQL and CQL.
type clauseDialect struct {
	name   string
	vocab  Vocabulary
	fields map[string]string
}

var _ Dialect = (*clauseDialect)(nil)

// JQL returns the Jira Query Language dialect.
func JQL() Dialect {
	return &clauseDialect{
		name: "jql",
		vocab: Vocabulary{
			Keywords: []string{"project", "assignee", "reporter", "status", "type", "label", "priority", "component"},
			Ranges:   []string{"created", "updated", "due"},
		},
		fields: map[string]string{
			"type":  "issuetype",
			"label": "labels",
			"due":   "duedate",
		},
	}
}

// CQL returns the Confluence Query Language dialect.
func CQL() Dialect {
	return &clauseDialect{
		name: "cql",
		vocab: Vocabulary{
			Keywords: []string{"space", "creator", "contributor", "type", "label", "title"},
			Ranges:   []string{"created", "lastmodified"},
		},
	}
}

func (d *clauseDialect) Name() string           { return d.name }
func (d *clauseDialect) Vocabulary() Vocabulary { return d.vocab }

func (d *clauseDialect) field(key string) string {
	if f, ok := d.fields[key]; ok {
		return f
	}
	return key
}

func (d *clauseDialect) Translate(q *query.ParsedQuery) string {
	if q == nil {
		return ""
	}

	var clauses []string
	if text, ok := q.Text(); ok && text != "" {
		clauses = append(clauses, "text ~ "+quoted(text))
	}
	for _, key := range d.vocab.Keywords {
		if v, ok := q.Keywords[key]; ok {
			clauses = d.appendMatch(clauses, key, v.Values(), false)
		}
	}
	for _, key := range d.vocab.Ranges {
		r, ok := q.Ranges[key]
		if !ok {
			continue
		}
		field := d.field(key)
		if r.From != "" {
			clauses = append(clauses, field+" >= "+quoted(r.From))
		}
		if r.HasTo && r.To != "" {
			clauses = append(clauses, field+" <= "+quoted(r.To))
		}
	}
	if v, ok := q.Exclude["text"]; ok {
		for _, term := range nonEmpty(v.Values()) {
			clauses = append(clauses, "text !~ "+quoted(term))
		}
	}
	for _, key := range d.vocab.Keywords {
		if v, ok := q.Exclude[key]; ok {
			clauses = d.appendMatch(clauses, key, v.Values(), true)
		}
	}
	return strings.Join(clauses, " AND ")
}

// appendMatch adds an equality clause for one value or an IN clause for
// several.
func (d *clauseDialect) appendMatch(clauses []string, key string, values []string, negate bool) []string {
	values = nonEmpty(values)
	field := d.field(key)
	switch len(values) {
	case 0:
		return clauses
	case 1:
		op := " = "
		if negate {
			op = " != "
		}
		return append(clauses, field+op+quoted(values[0]))
	}

	quotedValues := make([]string, len(values))
	for i, v := range values {
		quotedValues[i] = quoted(v)
	}
	op := " IN "
	if negate {
		op = " NOT IN "
	}
	return append(clauses, field+op+"("+strings.Join(quotedValues, ", ")+")")
}
