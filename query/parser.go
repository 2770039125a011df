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
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// Option configures a Parser.
type Option func(*Parser)

// WithKeywords adds keys recognized as keyword filters. Keys are
// case-sensitive. A key that is both a keyword and a range is a keyword.
func WithKeywords(keywords ...string) Option {
	return func(p *Parser) {
		for _, k := range keywords {
			if _, ok := p.keywords[k]; ok {
				continue
			}
			p.keywords[k] = struct{}{}
			p.keywordOrder = append(p.keywordOrder, k)
		}
	}
}

// WithRanges adds keys recognized as range filters.
func WithRanges(ranges ...string) Option {
	return func(p *Parser) {
		for _, r := range ranges {
			if _, ok := p.ranges[r]; ok {
				continue
			}
			p.ranges[r] = struct{}{}
			p.rangeOrder = append(p.rangeOrder, r)
		}
	}
}

// WithOffsets enables or disables offset tracking. Enabled by default.
func WithOffsets(enabled bool) Option {
	return func(p *Parser) {
		p.offsets = enabled
	}
}

// WithTokenize keeps text terms separate instead of joining them.
func WithTokenize(enabled bool) Option {
	return func(p *Parser) {
		p.tokenize = enabled
	}
}

// WithAlwaysArray represents every keyword and exclusion value as a list,
// even when only one value was seen.
func WithAlwaysArray(enabled bool) Option {
	return func(p *Parser) {
		p.alwaysArray = enabled
	}
}

// Parser turns query strings into ParsedQuery values using a fixed
// vocabulary of keywords and ranges.
type Parser struct {
	keywords     map[string]struct{}
	keywordOrder []string
	ranges       map[string]struct{}
	rangeOrder   []string
	offsets      bool
	tokenize     bool
	alwaysArray  bool
}

// NewParser creates a Parser with offsets enabled and the given options
// applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		keywords: make(map[string]struct{}),
		ranges:   make(map[string]struct{}),
		offsets:  true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses input with a one-off Parser built from opts.
func Parse(input string, opts ...Option) *ParsedQuery {
	return NewParser(opts...).Parse(input)
}

// Keywords returns the recognized keywords in the order they were added.
func (p *Parser) Keywords() []string {
	return slices.Clone(p.keywordOrder)
}

// Ranges returns the recognized range keys in the order they were added.
func (p *Parser) Ranges() []string {
	return slices.Clone(p.rangeOrder)
}

// IsKeyword reports whether key is a recognized keyword.
func (p *Parser) IsKeyword(key string) bool {
	_, ok := p.keywords[key]
	return ok
}

// IsRange reports whether key is a recognized range and not a keyword.
func (p *Parser) IsRange(key string) bool {
	if p.IsKeyword(key) {
		return false
	}
	_, ok := p.ranges[key]
	return ok
}

// Parse parses input. It never fails; malformed filters degrade to text.
func (p *Parser) Parse(input string) *ParsedQuery {
	q := &ParsedQuery{
		Keywords: make(map[string]Value),
		Ranges:   make(map[string]Range),
		Exclude:  make(map[string]Value),
		tokenize: p.tokenize,
	}
	if p.offsets {
		q.Offsets = []Offset{}
	}

	for _, tok := range Scan(input) {
		switch tok.Kind {
		case KindText:
			p.addText(q, tok)
		case KindKeyword:
			p.addKeyword(q, tok)
		}
	}
	return q
}

func (p *Parser) addText(q *ParsedQuery, tok Token) {
	if tok.Value == "" {
		return
	}
	if tok.Excluded {
		// Free text may contain commas, so excluded text is never split.
		p.collect(q.Exclude, "text", []string{tok.Value})
		return
	}
	q.Terms = append(q.Terms, tok.Value)
	if p.offsets {
		q.Offsets = append(q.Offsets, Offset{
			Kind:  KindText,
			Text:  tok.Value,
			Start: tok.Start,
			End:   tok.End,
		})
	}
}

func (p *Parser) addKeyword(q *ParsedQuery, tok Token) {
	key := tok.Key
	excluded := false
	isKeyword := false
	if stripped, ok := strings.CutPrefix(key, "-"); ok {
		if p.IsKeyword(stripped) {
			key = stripped
			excluded = true
			isKeyword = true
		}
	} else {
		isKeyword = p.IsKeyword(key)
	}

	switch {
	case isKeyword:
		if p.offsets {
			start := tok.Start
			if excluded {
				start++
			}
			q.Offsets = append(q.Offsets, Offset{
				Kind:    KindKeyword,
				Keyword: key,
				Value:   tok.Value,
				Start:   start,
				End:     tok.End,
			})
		}
		if tok.Value == "" {
			return
		}
		target := q.Keywords
		if excluded {
			target = q.Exclude
		}
		p.collect(target, key, strings.Split(tok.Value, ","))

	case p.IsRange(key):
		if p.offsets {
			q.Offsets = append(q.Offsets, Offset{
				Kind:    KindKeyword,
				Keyword: key,
				Value:   tok.Value,
				Start:   tok.Start,
				End:     tok.End,
			})
		}
		q.Ranges[key] = parseRange(tok.Value)

	default:
		text := tok.Key + ":" + tok.Value
		q.Terms = append(q.Terms, text)
		if p.offsets {
			q.Offsets = append(q.Offsets, Offset{
				Kind:  KindText,
				Text:  text,
				Start: tok.Start,
				End:   tok.End,
			})
		}
	}
}

// collect adds values under key: a first single value is stored bare
// unless alwaysArray is set, anything else becomes or extends a list.
func (p *Parser) collect(m map[string]Value, key string, values []string) {
	existing, ok := m[key]
	if !ok {
		if len(values) == 1 && !p.alwaysArray {
			m[key] = Single(values[0])
		} else {
			m[key] = Multiple(values...)
		}
		return
	}
	m[key] = existing.with(values...)
}

// parseRange splits from-to. Any split other than exactly two parts,
// including comma-separated pairs, keeps the whole value as From.
func parseRange(value string) Range {
	parts := strings.Split(value, "-")
	if len(parts) == 2 {
		return Range{From: parts[0], To: parts[1], HasTo: true}
	}
	return Range{From: value}
}

// ParsedQuery is the structured form of a query string.
type ParsedQuery struct {
	// Terms holds plain text terms, including unrecognized key:value terms,
	// in input order.
	Terms []string
	// Keywords maps recognized keywords to their values.
	Keywords map[string]Value
	// Ranges maps recognized range keys to their bounds.
	Ranges map[string]Range
	// Exclude maps excluded keywords, and "text" for excluded terms, to
	// their values.
	Exclude map[string]Value
	// Offsets lists recognized terms in input order. Nil when offset
	// tracking is disabled.
	Offsets []Offset

	tokenize bool
}

// Text returns the text terms joined with single spaces and trimmed. The
// boolean is false when the query has no text terms.
func (q *ParsedQuery) Text() (string, bool) {
	if len(q.Terms) == 0 {
		return "", false
	}
	return strings.TrimSpace(strings.Join(q.Terms, " ")), true
}

// IsEmpty reports whether the query has no text, filters or exclusions.
func (q *ParsedQuery) IsEmpty() bool {
	return len(q.Terms) == 0 && len(q.Keywords) == 0 && len(q.Ranges) == 0 && len(q.Exclude) == 0
}

// Tokenized reports whether the query was parsed with WithTokenize.
func (q *ParsedQuery) Tokenized() bool {
	return q.tokenize
}

// reservedFields are emitted by ParsedQuery itself and win over keywords or
// ranges of the same name.
var reservedFields = map[string]bool{"text": true, "exclude": true, "offsets": true}

// MarshalJSON encodes the query as a flat object: "text" (a string, or an
// array in tokenize mode, absent without text), one entry per keyword and
// range, "exclude", and "offsets" when tracked.
func (q *ParsedQuery) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, value any) error {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, _ := json.Marshal(key)
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(encoded)
		return nil
	}

	if text, ok := q.Text(); ok {
		var value any = text
		if q.tokenize {
			value = q.Terms
		}
		if err := write("text", value); err != nil {
			return nil, err
		}
	}
	for _, key := range slices.Sorted(maps.Keys(q.Keywords)) {
		if reservedFields[key] {
			continue
		}
		if err := write(key, q.Keywords[key]); err != nil {
			return nil, err
		}
	}
	for _, key := range slices.Sorted(maps.Keys(q.Ranges)) {
		if reservedFields[key] {
			continue
		}
		if err := write(key, q.Ranges[key]); err != nil {
			return nil, err
		}
	}
	exclude := q.Exclude
	if exclude == nil {
		exclude = map[string]Value{}
	}
	if err := write("exclude", exclude); err != nil {
		return nil, err
	}
	if q.Offsets != nil {
		if err := write("offsets", q.Offsets); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
