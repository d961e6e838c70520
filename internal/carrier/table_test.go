package carrier

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_Validation(t *testing.T) {
	valid := func(id string) *Pattern {
		return &Pattern{
			ID:       id,
			Name:     id,
			Country:  "BR",
			Regexes:  []*regexp.Regexp{regexp.MustCompile(`^X\d+$`)},
			Priority: 50,
		}
	}

	tests := []struct {
		name     string
		patterns []*Pattern
		wantErr  string
	}{
		{
			name:     "valid patterns",
			patterns: []*Pattern{valid("a"), valid("b")},
		},
		{
			name:     "empty ID",
			patterns: []*Pattern{valid("")},
			wantErr:  "empty ID",
		},
		{
			name:     "duplicate ID",
			patterns: []*Pattern{valid("a"), valid("a")},
			wantErr:  "duplicate carrier pattern ID",
		},
		{
			name: "priority out of range",
			patterns: []*Pattern{{
				ID:       "a",
				Regexes:  []*regexp.Regexp{regexp.MustCompile(`^X$`)},
				Priority: 101,
			}},
			wantErr: "out of range",
		},
		{
			name: "no regexes",
			patterns: []*Pattern{{
				ID:       "a",
				Priority: 50,
			}},
			wantErr: "no regex patterns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.patterns)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Len(t, table.Patterns(), len(tt.patterns))
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	correios := table.ByID("correios")
	require.NotNil(t, correios)
	assert.Equal(t, "Correios", correios.Name)
	assert.Equal(t, "BR", correios.Country)
	assert.NotNil(t, correios.Checksum)

	assert.Nil(t, table.ByID("nonexistent"))

	domestic := table.ByCountry("BR")
	assert.NotEmpty(t, domestic)
	for _, p := range domestic {
		assert.Equal(t, "BR", p.Country)
	}
}

func TestTable_PrefixHits(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name    string
		code    string
		wantHit []string
		wantNot []string
	}{
		{
			name:    "correios two letter prefix",
			code:    "BR123456789BR",
			wantHit: []string{"correios"},
			wantNot: []string{"ups", "jadlog"},
		},
		{
			name:    "ups prefix",
			code:    "1ZAB12340112345678",
			wantHit: []string{"ups"},
			wantNot: []string{"correios"},
		},
		{
			name:    "three letter prefix",
			code:    "LOG123456789",
			wantHit: []string{"loggi"},
		},
		{
			name:    "numeric jadlog prefix",
			code:    "10000000000008",
			wantHit: []string{"jadlog"},
		},
		{
			name:    "no known prefix",
			code:    "XX123456789XX",
			wantNot: []string{"correios", "ups"},
		},
		{
			name: "too short for any prefix",
			code: "B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := table.PrefixHits(tt.code)
			for _, id := range tt.wantHit {
				assert.True(t, hits[id], "expected prefix hit for %s", id)
			}
			for _, id := range tt.wantNot {
				assert.False(t, hits[id], "unexpected prefix hit for %s", id)
			}
		})
	}
}

func TestLengthRange(t *testing.T) {
	exact := Exact(13)
	assert.True(t, exact.Contains(13))
	assert.False(t, exact.Contains(12))
	assert.False(t, exact.Contains(14))

	between := Between(11, 13)
	assert.True(t, between.Contains(11))
	assert.True(t, between.Contains(13))
	assert.False(t, between.Contains(10))
	assert.False(t, between.Contains(14))
}

func TestPattern_MatchesLength_NoConstraint(t *testing.T) {
	p := &Pattern{
		ID:      "x",
		Regexes: []*regexp.Regexp{regexp.MustCompile(`^.*$`)},
	}
	assert.True(t, p.MatchesLength(""))
	assert.True(t, p.MatchesLength("anything-at-all"))
}
