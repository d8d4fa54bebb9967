package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"id", "id"},
		{"firstName", "first_name"},
		{"createdAt", "created_at"},
		{"UserProfile", "user_profile"},
		{"already_snake", "already_snake"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSnakeCase(tt.input))
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"user", "users"},
		{"User", "users"},
		{"category", "categories"},
		{"day", "days"},
		{"box", "boxes"},
		{"match", "matches"},
		{"wife", "wives"},
		{"half", "halves"},
		{"status", "statuses"},
		{"Person", "people"},
		{"child", "children"},
		{"sheep", "sheep"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Pluralize(tt.input))
		})
	}
}

func TestSingularize(t *testing.T) {
	assert.Equal(t, "user", Singularize("users"))
	assert.Equal(t, "category", Singularize("categories"))
	assert.Equal(t, "box", Singularize("boxes"))
	assert.Equal(t, "match", Singularize("matches"))
	assert.Equal(t, "class", Singularize("class"))
	assert.Equal(t, "post", Singularize("post"))
	assert.Equal(t, "status", Singularize("statuses"))
	assert.Equal(t, "person", Singularize("people"))
	assert.Equal(t, "child", Singularize("children"))
	assert.Equal(t, "wife", Singularize("wives"))
	assert.Equal(t, "", Singularize(""))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("   "))
	assert.Equal(t, []string{"posts"}, SplitList("posts"))
	assert.Equal(t, []string{"posts", "tags"}, SplitList("posts, tags"))
	assert.Equal(t, []string{"a", "b"}, SplitList(",a,,b,"))
}
