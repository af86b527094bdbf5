package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseSeparators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "plain title untouched",
			input:    "Foo bar",
			expected: "Foo bar",
		},
		{
			name:     "underscores become spaces",
			input:    "Foo_bar",
			expected: "Foo bar",
		},
		{
			name:     "runs collapse to one space",
			input:    "Foo__  _bar",
			expected: "Foo bar",
		},
		{
			name:     "leading and trailing runs kept as single spaces",
			input:    "_Foo bar_",
			expected: " Foo bar ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CollapseSeparators(tt.input))
		})
	}
}

func TestFirstUpper(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "lowercase first letter",
			input:    "foo bar",
			expected: "Foo bar",
		},
		{
			name:     "already uppercase",
			input:    "Foo",
			expected: "Foo",
		},
		{
			name:     "only the first letter changes",
			input:    "fOo",
			expected: "FOo",
		},
		{
			name:     "non-ascii first rune",
			input:    "ölberg",
			expected: "Ölberg",
		},
		{
			name:     "digit first rune untouched",
			input:    "2001: A Space Odyssey",
			expected: "2001: A Space Odyssey",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FirstUpper(tt.input))
		})
	}
}

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "trims whitespace",
			input:    []string{"  foo  ", "bar  "},
			expected: []string{"foo", "bar"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"foo", "bar", "foo", "baz", "bar"},
			expected: []string{"foo", "bar", "baz"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"foo", "", "  ", "bar"},
			expected: []string{"foo", "bar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
