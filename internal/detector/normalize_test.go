package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already clean", in: "BR123456789BR", want: "BR123456789BR"},
		{name: "lowercase", in: "br123456789br", want: "BR123456789BR"},
		{name: "surrounding whitespace", in: "  BR123456789BR\t\n", want: "BR123456789BR"},
		{name: "internal whitespace", in: "BR 123 456 789 BR", want: "BR123456789BR"},
		{name: "mixed", in: " br 123\t456 789 bR ", want: "BR123456789BR"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: " \t\n ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalization must be idempotent")
		})
	}
}
