package utils

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// ToSnakeCase converts a camelCase string to snake_case
func ToSnakeCase(s string) string {
	if s == "" {
		return s
	}

	var result strings.Builder
	result.Grow(len(s) + 5)

	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// Pluralize returns the lower case plural of word, as used for default
// table names
func Pluralize(word string) string {
	if word == "" {
		return word
	}
	return inflection.Plural(strings.ToLower(word))
}

// Singularize returns the singular of a plural table name
func Singularize(word string) string {
	if word == "" {
		return word
	}
	return inflection.Singular(word)
}

// SplitList splits a comma separated list, trimming blanks and dropping empty items.
// Query strings such as "include=posts, tags" arrive in this form.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
