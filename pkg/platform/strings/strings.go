// Package strings provides string manipulation utilities shared across the
// title and namespace handling code.
package strings

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var separatorRuns = regexp.MustCompile(`[_ ]+`)

// CollapseSeparators replaces every run of underscores and spaces with a
// single space. Wiki titles treat "Foo_bar", "Foo  bar" and "Foo bar" as the
// same page name.
//
// Example:
//
//	CollapseSeparators("Foo__bar  baz")
//	// Returns: "Foo bar baz"
func CollapseSeparators(s string) string {
	return separatorRuns.ReplaceAllString(s, " ")
}

// FirstUpper uppercases only the first rune of s and leaves the rest
// untouched. This is deliberately not a general case fold: first-letter
// namespaces compare titles case-insensitively in the first position only.
func FirstUpper(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	up := unicode.ToUpper(r)
	if up == r {
		return s
	}
	return string(up) + s[size:]
}

// DedupeAndTrim removes duplicates and empty strings from a slice, trimming
// whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
