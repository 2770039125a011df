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

// Kind classifies a scanned term.
type Kind int

const (
	// KindText is a plain word or quoted phrase.
	KindText Kind = iota
	// KindKeyword is a key:value term. Whether the key is recognized is
	// decided by the Parser, not by the scanner.
	KindKeyword
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// Token is a single term of a query string.
type Token struct {
	Kind Kind
	// Raw is the matched substring, including quotes and escapes.
	Raw string
	// Start and End are byte offsets into the input; input[Start:End] == Raw.
	Start int
	End   int
	// Key is the text before the first ':' of a keyword term, including a
	// leading '-' if present.
	Key string
	// Value is the unquoted, unescaped text of a term. For keyword terms it
	// is everything after the first ':'.
	Value string
	// Excluded reports a leading '-'. For text terms the '-' has already
	// been removed from Value; for keyword terms it is still part of Key.
	Excluded bool
}

// Scan splits input into terms in left-to-right order. Every non-space
// character of input belongs to exactly one token.
//
// At each position the longest of the following is taken, in priority order:
// key:'single quoted', key:"double quoted", -"double quoted",
// -'single quoted', then any run of non-space characters.
func Scan(input string) []Token {
	var tokens []Token
	pos := 0
	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])
		if unicode.IsSpace(r) {
			pos += size
			continue
		}
		end := matchTerm(input, pos)
		tokens = append(tokens, classify(input, pos, end))
		pos = end
	}
	return tokens
}

// matchTerm returns the end offset of the term starting at start.
func matchTerm(s string, start int) int {
	runEnd := nonSpaceEnd(s, start)
	if end, ok := matchQuotedValue(s, start, runEnd, '\''); ok {
		return end
	}
	if end, ok := matchQuotedValue(s, start, runEnd, '"'); ok {
		return end
	}
	if end, ok := matchPhrase(s, start, '"'); ok {
		return end
	}
	if end, ok := matchPhrase(s, start, '\''); ok {
		return end
	}
	return runEnd
}

// nonSpaceEnd returns the end of the run of non-space characters at start.
func nonSpaceEnd(s string, start int) int {
	i := start
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// matchQuotedValue matches key:<quote>...<quote>. The key is a non-empty run
// of non-space characters and is as long as possible, so the last ':' quote
// pair in the run that opens a closed string wins.
func matchQuotedValue(s string, start, runEnd int, quote byte) (int, bool) {
	for k := runEnd - 2; k > start; k-- {
		if s[k] != ':' || s[k+1] != quote {
			continue
		}
		if end, ok := closeQuote(s, k+1, quote); ok {
			return end, true
		}
	}
	return 0, false
}

// matchPhrase matches an optionally '-' prefixed quoted phrase.
func matchPhrase(s string, start int, quote byte) (int, bool) {
	i := start
	if s[i] == '-' {
		i++
	}
	if i >= len(s) || s[i] != quote {
		return 0, false
	}
	return closeQuote(s, i, quote)
}

// closeQuote finds the quote closing the one at open and returns the offset
// just past it. A backslash escapes the next character unless that character
// is a line break.
func closeQuote(s string, open int, quote byte) (int, bool) {
	i := open + 1
	for i < len(s) {
		switch s[i] {
		case quote:
			return i + 1, true
		case '\\':
			if i+1 >= len(s) || lineBreakAt(s, i+1) {
				return 0, false
			}
			_, size := utf8.DecodeRuneInString(s[i+1:])
			i += 1 + size
		default:
			i++
		}
	}
	return 0, false
}

func lineBreakAt(s string, i int) bool {
	switch s[i] {
	case '\n', '\r':
		return true
	}
	rest := s[i:]
	return strings.HasPrefix(rest, "\u2028") || strings.HasPrefix(rest, "\u2029")
}

// classify turns a raw term into a token.
func classify(input string, start, end int) Token {
	raw := input[start:end]
	tok := Token{Raw: raw, Start: start, End: end}

	if sep := strings.IndexByte(raw, ':'); sep >= 0 {
		tok.Kind = KindKeyword
		tok.Key = raw[:sep]
		tok.Value = unescape(unquote(raw[sep+1:]))
		tok.Excluded = strings.HasPrefix(tok.Key, "-")
		return tok
	}

	text := raw
	if strings.HasPrefix(text, "-") {
		tok.Excluded = true
		text = text[1:]
	}
	tok.Kind = KindText
	tok.Value = unescape(unquote(text))
	return tok
}

// unquote strips one layer of matching surrounding quotes.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// unescape resolves backslash escapes: \\ is a backslash, \0 is NUL, a
// trailing backslash is dropped and any other escaped character stands for
// itself. A backslash before a line break is dropped.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			break
		}
		switch {
		case s[i+1] == '0':
			b.WriteByte(0)
			i++
		case lineBreakAt(s, i+1):
		default:
			_, size := utf8.DecodeRuneInString(s[i+1:])
			b.WriteString(s[i+1 : i+1+size])
			i += size
		}
	}
	return b.String()
}
