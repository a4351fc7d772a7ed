package util

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
		{name: "already normalized", input: "alice@example.com", want: "alice@example.com"},
		{name: "mixed case domain", input: "alice@Example.com", want: "alice@example.com"},
		{name: "mixed case local part", input: "Alice@example.com", want: "alice@example.com"},
		{name: "surrounding whitespace", input: "  alice@example.com \t", want: "alice@example.com"},
		{name: "whitespace and case", input: " ALICE@EXAMPLE.COM ", want: "alice@example.com"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}
