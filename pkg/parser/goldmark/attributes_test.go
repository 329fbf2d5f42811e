package goldmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		want     map[string]string
		consumed int
		ok       bool
	}{
		{"empty", "{}", map[string]string{}, 2, true},
		{"class", "{.a}", map[string]string{"class": "a"}, 4, true},
		{"chained classes", "{.a.b}", map[string]string{"class": "a b"}, 6, true},
		{"spaced classes", "{.a .b}", map[string]string{"class": "a b"}, 7, true},
		{"id last wins", "{#x #y}", map[string]string{"id": "y"}, 7, true},
		{"unquoted value", "{key=value}", map[string]string{"key": "value"}, 11, true},
		{"double quoted", `{title="a b"}`, map[string]string{"title": "a b"}, 13, true},
		{"single quoted", `{title='a'}`, map[string]string{"title": "a"}, 11, true},
		{"bare key", "{hidden}", map[string]string{"hidden": ""}, 8, true},
		{"class key and shorthand", `{class="x y" .z}`, map[string]string{"class": "x y z"}, 16, true},
		{"mixed", `{#id .c k=v}`, map[string]string{"id": "id", "class": "c", "k": "v"}, 12, true},
		{"trailing input", "{.a} rest", map[string]string{"class": "a"}, 4, true},
		{"not a list", ".a", nil, 0, false},
		{"unterminated", "{.a", nil, 0, false},
		{"empty id", "{#}", nil, 0, false},
		{"empty class", "{.}", nil, 0, false},
		{"missing value", "{key=}", nil, 0, false},
		{"unterminated quote", `{key="abc}`, nil, 0, false},
		{"invalid character", "{@}", nil, 0, false},
		{"quote glued to next entry", `{a="b"c}`, nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, consumed, ok := ParseAttributes([]byte(tt.src))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.consumed, consumed)
			assert.Equal(t, tt.want, got)
		})
	}
}
