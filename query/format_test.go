package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	opts := []Option{WithKeywords("project", "tag"), WithRanges("date")}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text", "hello world", "hello world"},
		{"phrase is quoted", `"hello world" x`, `"hello world" x`},
		{"keyword", "project:core fix", "fix project:core"},
		{"keyword with spaces", `project:"big core"`, `project:"big core"`},
		{"multiple values", "tag:a tag:b", "tag:a,b"},
		{"range", "date:2024-2025", "date:2024-2025"},
		{"open range", "date:2024", "date:2024"},
		{"excluded text", "-draft x", "x -draft"},
		{"excluded keyword", "-tag:wip", "-tag:wip"},
		{"vocabulary order", "tag:x project:y", "project:y tag:x"},
		{"escapes quotes", `'say "hi"'`, `"say \"hi\""`},
		{"excluded phrase", `-"two words"`, `-"two words"`},
		{"text starting with dash", `"-x"`, `"-x"`},
	}

	p := NewParser(opts...)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Format(p.Parse(tt.input)))
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	p := NewParser(WithKeywords("project", "tag"), WithRanges("date", "size"), WithOffsets(false))

	inputs := []string{
		"hello world",
		`fix "race condition" project:core`,
		`-tag:wip,draft tag:"needs review" date:2024-01`,
		`-"not this" -nor project:a,b project:c`,
		`path\\to\\file size:10-20`,
		`'it\'s' "quote \" inside"`,
		`foo:"a b"`,
		`"x:y z"`,
		`note:'it\'s here' tag:x`,
		`"a b:c d"`,
		`-tag:"x y" "see: below"`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := p.Parse(input)
			second := p.Parse(p.Format(first))
			assert.Equal(t, first, second)
		})
	}
}

func TestFormat_TextWithColon(t *testing.T) {
	p := NewParser(WithKeywords("project"), WithOffsets(false))

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"quoted value after unknown key", `foo:"a b"`, `foo:"a b"`},
		{"bare unknown key", "foo:bar", "foo:bar"},
		{"single quoted value", `foo:'x y'`, `foo:"x y"`},
		{"phrase with colon", `"x:y z"`, `"x:"y z\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := p.Parse(tt.input)
			formatted := p.Format(q)
			assert.Equal(t, tt.expected, formatted)
			assert.Equal(t, q.Terms, p.Parse(formatted).Terms)
		})
	}
}

func TestFormat_NilQuery(t *testing.T) {
	assert.Equal(t, "", Format(nil))
}

func TestFormat_SkipsUnknownVocabulary(t *testing.T) {
	q := Parse("project:x", WithKeywords("project"))
	assert.Equal(t, "", Format(q))
	assert.Equal(t, "project:x", Format(q, WithKeywords("project")))
}
