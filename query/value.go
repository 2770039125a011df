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

package query

import (
	"encoding/json"
	"slices"
)

// Value holds the value(s) collected for a keyword or exclusion. It is
// either a single string or a list of strings; a list is produced by
// repeated keywords, comma-separated values or WithAlwaysArray.
type Value struct {
	values []string
	multi  bool
}

// Single returns a single-string Value.
func Single(s string) Value {
	return Value{values: []string{s}}
}

// Multiple returns a list Value, even when vs has one element.
func Multiple(vs ...string) Value {
	return Value{values: slices.Clone(vs), multi: true}
}

// IsMultiple reports whether the value is a list.
func (v Value) IsMultiple() bool {
	return v.multi
}

// Values returns a copy of all collected strings in input order.
func (v Value) Values() []string {
	return slices.Clone(v.values)
}

// First returns the first collected string, or "" for the zero Value.
func (v Value) First() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Len returns the number of collected strings.
func (v Value) Len() int {
	return len(v.values)
}

// Contains reports whether s is one of the collected strings.
func (v Value) Contains(s string) bool {
	return slices.Contains(v.values, s)
}

// with returns v promoted to a list and extended with vs.
func (v Value) with(vs ...string) Value {
	out := make([]string, 0, len(v.values)+len(vs))
	out = append(out, v.values...)
	out = append(out, vs...)
	return Value{values: out, multi: true}
}

// MarshalJSON encodes a single value as a string and a list as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.multi {
		return json.Marshal(v.First())
	}
	if v.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.values)
}

// Range is the value of a range filter such as date:2024-01-01 or size:10-20.
type Range struct {
	From string
	To   string
	// HasTo is set when the value split into exactly two parts on '-'.
	HasTo bool
}

// MarshalJSON encodes the range as {"from": ..., "to": ...}, omitting "to"
// unless HasTo is set.
func (r Range) MarshalJSON() ([]byte, error) {
	if r.HasTo {
		return json.Marshal(struct {
			From string `json:"from"`
			To   string `json:"to"`
		}{r.From, r.To})
	}
	return json.Marshal(struct {
		From string `json:"from"`
	}{r.From})
}

// Offset describes where a recognized term appeared in the input.
// Text offsets set Text; keyword and range offsets set Keyword and Value.
type Offset struct {
	Kind    Kind
	Text    string
	Keyword string
	Value   string
	Start   int
	End     int
}

// MarshalJSON encodes the offset in its text or keyword shape.
func (o Offset) MarshalJSON() ([]byte, error) {
	if o.Kind == KindText {
		return json.Marshal(struct {
			Text        string `json:"text"`
			OffsetStart int    `json:"offsetStart"`
			OffsetEnd   int    `json:"offsetEnd"`
		}{o.Text, o.Start, o.End})
	}
	return json.Marshal(struct {
		Keyword     string `json:"keyword"`
		Value       string `json:"value"`
		OffsetStart int    `json:"offsetStart"`
		OffsetEnd   int    `json:"offsetEnd"`
	}{o.Keyword, o.Value, o.Start, o.End})
}
