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

// operatorDialect renders space-separated "operator:value" terms, as used by
// mail and chat search boxes.
type operatorDialect struct {
	name  string
	vocab Vocabulary
	// special lists characters that force a value to be quoted.
	special string
	// groupValues renders several values of one operator as a single
	// {a b} group instead of repeating the operator.
	groupValues bool
	ranges      map[string]rangeRenderer
}

var _ Dialect = (*operatorDialect)(nil)

// Gmail returns the Gmail search operator dialect. The date range maps to
// after:/before: and the size range to larger:/smaller:.
func Gmail() Dialect {
	return &operatorDialect{
		name: "gmail",
		vocab: Vocabulary{
			Keywords: []string{"from", "to", "cc", "subject", "label", "has", "in", "is", "filename"},
			Ranges:   []string{"date", "size"},
		},
		special:     "(){}",
		groupValues: true,
		ranges: map[string]rangeRenderer{
			"date": boundedRange("after:", "before:", ""),
			"size": boundedRange("larger:", "smaller:", ""),
		},
	}
}

// Slack returns the Slack search modifier dialect. A date range with both
// ends maps to after:/before:, a single date to on:.
func Slack() Dialect {
	return &operatorDialect{
		name: "slack",
		vocab: Vocabulary{
			Keywords: []string{"in", "from", "has", "is", "with"},
			Ranges:   []string{"date"},
		},
		ranges: map[string]rangeRenderer{
			"date": boundedRange("after:", "before:", "on:"),
		},
	}
}

// rangeRenderer renders a range as operator terms, passing each bound
// through value.
type rangeRenderer func(r query.Range, value func(string) string) []string

// boundedRange maps From and To onto lower and upper operators. When exact
// is set and the range has no upper end, From is rendered with exact.
func boundedRange(lower, upper, exact string) rangeRenderer {
	return func(r query.Range, value func(string) string) []string {
		if !r.HasTo {
			if r.From == "" {
				return nil
			}
			if exact != "" {
				return []string{exact + value(r.From)}
			}
			return []string{lower + value(r.From)}
		}
		var out []string
		if r.From != "" {
			out = append(out, lower+value(r.From))
		}
		if r.To != "" {
			out = append(out, upper+value(r.To))
		}
		return out
	}
}

func (d *operatorDialect) Name() string           { return d.name }
func (d *operatorDialect) Vocabulary() Vocabulary { return d.vocab }

func (d *operatorDialect) Translate(q *query.ParsedQuery) string {
	if q == nil {
		return ""
	}

	var parts []string
	for _, term := range q.Terms {
		if strings.TrimSpace(term) != "" {
			parts = append(parts, d.value(term))
		}
	}
	for _, key := range d.vocab.Keywords {
		if v, ok := q.Keywords[key]; ok {
			parts = append(parts, d.operator("", key, v.Values())...)
		}
	}
	for _, key := range d.vocab.Ranges {
		r, ok := q.Ranges[key]
		render := d.ranges[key]
		if !ok || render == nil {
			continue
		}
		parts = append(parts, render(r, d.value)...)
	}
	if v, ok := q.Exclude["text"]; ok {
		for _, term := range nonEmpty(v.Values()) {
			parts = append(parts, "-"+d.value(term))
		}
	}
	for _, key := range d.vocab.Keywords {
		if v, ok := q.Exclude[key]; ok {
			parts = append(parts, d.operator("-", key, v.Values())...)
		}
	}
	return strings.Join(parts, " ")
}

func (d *operatorDialect) value(s string) string {
	return quotedIfNeeded(s, d.special)
}

func (d *operatorDialect) operator(prefix, key string, values []string) []string {
	values = nonEmpty(values)
	if len(values) == 0 {
		return nil
	}
	if d.groupValues && len(values) > 1 {
		rendered := make([]string, len(values))
		for i, v := range values {
			rendered[i] = d.value(v)
		}
		return []string{prefix + key + ":{" + strings.Join(rendered, " ") + "}"}
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = prefix + key + ":" + d.value(v)
	}
	return out
}
