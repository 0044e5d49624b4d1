package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Friend@Example.COM", "friend@example.com"},
		{"trims surrounding whitespace", "  friend@example.com ", "friend@example.com"},
		{"trims and lowercases together", " Friend@Example.com ", "friend@example.com"},
		{"already normalized", "friend@example.com", "friend@example.com"},
		{"empty stays empty", "", ""},
		{"whitespace only becomes empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}
