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
	"strings"
	"unicode"
	"unicode/utf8"
)

// Format renders q back into a query string that p parses to an equivalent
// query: text terms first, then keywords and ranges in vocabulary order,
// then exclusions. Keywords and ranges outside p's vocabulary are skipped.
func (p *Parser) Format(q *ParsedQuery) string {
	if q == nil {
		return ""
	}

	var parts []string
	for _, term := range q.Terms {
		parts = append(parts, p.textTerm(term)...)
	}
	for _, key := range p.keywordOrder {
		if v, ok := q.Keywords[key]; ok && v.Len() > 0 {
			parts = append(parts, key+":"+quoteValue(strings.Join(v.values, ",")))
		}
	}
	for _, key := range p.rangeOrder {
		r, ok := q.Ranges[key]
		if !ok || p.IsKeyword(key) {
			continue
		}
		value := r.From
		if r.HasTo {
			value += "-" + r.To
		}
		if value != "" {
			parts = append(parts, key+":"+quoteValue(value))
		}
	}

	if v, ok := q.Exclude["text"]; ok {
		for _, term := range v.values {
			if term != "" {
				parts = append(parts, "-"+quoteTerm(term))
			}
		}
	}
	for _, key := range p.keywordOrder {
		if v, ok := q.Exclude[key]; ok && v.Len() > 0 {
			parts = append(parts, "-"+key+":"+quoteValue(strings.Join(v.values, ",")))
		}
	}

	return strings.Join(parts, " ")
}

// Format renders q with a one-off Parser built from opts.
func Format(q *ParsedQuery, opts ...Option) string {
	return NewParser(opts...).Format(q)
}

// textTerm renders a free text term. A term holding ':' scans back as
// key:value, so the first rendering that p rescans as the same single text
// term wins. When none does, whitespace before the ':' splits the term into
// separate words that keep the query text.
func (p *Parser) textTerm(term string) []string {
	candidates := []string{quoteTerm(term)}
	sep := strings.IndexByte(term, ':')
	if sep > 0 {
		candidates = []string{term[:sep] + ":" + quoteValue(term[sep+1:]), term, quoteTerm(term)}
	}
	for _, c := range candidates {
		if p.scansAsText(c, term) {
			return []string{c}
		}
	}
	if sep < 0 {
		return candidates
	}

	key, value := term[:sep], term[sep+1:]
	var parts []string
	if i := strings.LastIndexFunc(key, unicode.IsSpace); i >= 0 {
		for _, word := range strings.Fields(key[:i]) {
			parts = append(parts, quoteTerm(word))
		}
		_, size := utf8.DecodeRuneInString(key[i:])
		key = key[i+size:]
	}
	if key == "" || strings.HasPrefix(key, "-") {
		return append(parts, quoteTerm(key+":"+value))
	}
	return append(parts, key+":"+quoteValue(value))
}

// scansAsText reports whether raw parses as exactly one text term equal to
// term.
func (p *Parser) scansAsText(raw, term string) bool {
	tokens := Scan(raw)
	if len(tokens) != 1 {
		return false
	}
	tok := tokens[0]
	if tok.Kind == KindText {
		return !tok.Excluded && tok.Value == term
	}
	if stripped, ok := strings.CutPrefix(tok.Key, "-"); ok && p.IsKeyword(stripped) {
		return false
	}
	if p.IsKeyword(tok.Key) || p.IsRange(tok.Key) {
		return false
	}
	return tok.Key+":"+tok.Value == term
}

// quoteTerm quotes a text term when it would not scan back as one term.
func quoteTerm(term string) string {
	if strings.HasPrefix(term, "-") {
		return quote(term)
	}
	return quoteValue(term)
}

// quoteValue quotes s when it contains whitespace, quotes or backslashes.
func quoteValue(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '\'' || r == '\\' || r == 0
	}) {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
