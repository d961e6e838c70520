package carrier

import (
	"fmt"
	"regexp"
)

// Table is the read-only registry of known carrier patterns. It is built once
// at startup and safe for unlimited concurrent reads.
type Table struct {
	patterns []*Pattern
	byID     map[string]*Pattern
	prefixes map[string][]string // prefix -> pattern IDs
}

// NewTable builds a Table from the given patterns, validating the uniqueness
// of IDs and the priority range, and precomputing the prefix index.
func NewTable(patterns []*Pattern) (*Table, error) {
	t := &Table{
		patterns: patterns,
		byID:     make(map[string]*Pattern, len(patterns)),
		prefixes: make(map[string][]string),
	}

	for _, p := range patterns {
		if p.ID == "" {
			return nil, fmt.Errorf("carrier pattern with empty ID")
		}
		if _, exists := t.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate carrier pattern ID: %s", p.ID)
		}
		if p.Priority < 0 || p.Priority > 100 {
			return nil, fmt.Errorf("carrier %s: priority %d out of range 0-100", p.ID, p.Priority)
		}
		if len(p.Regexes) == 0 {
			return nil, fmt.Errorf("carrier %s: no regex patterns defined", p.ID)
		}
		t.byID[p.ID] = p

		for _, prefix := range p.Prefixes {
			t.prefixes[prefix] = append(t.prefixes[prefix], p.ID)
		}
	}

	return t, nil
}

// MustTable is like NewTable but panics on an invalid definition. Intended for
// the package-level default table, where a bad entry is a programmer error.
func MustTable(patterns []*Pattern) *Table {
	t, err := NewTable(patterns)
	if err != nil {
		panic(err)
	}
	return t
}

// Patterns returns all registered patterns.
func (t *Table) Patterns() []*Pattern {
	return t.patterns
}

// ByID returns the pattern with the given carrier ID, or nil.
func (t *Table) ByID(id string) *Pattern {
	return t.byID[id]
}

// ByCountry returns the patterns registered for the given ISO country code.
func (t *Table) ByCountry(country string) []*Pattern {
	var patterns []*Pattern
	for _, p := range t.patterns {
		if p.Country == country {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// PrefixHits looks up the code's first two and three characters against the
// prefix index and returns the set of carrier IDs that plausibly issue codes
// starting that way. Computed once per detection call, not per pattern.
func (t *Table) PrefixHits(code string) map[string]bool {
	hits := make(map[string]bool)
	for _, n := range []int{2, 3} {
		if len(code) < n {
			break
		}
		for _, id := range t.prefixes[code[:n]] {
			hits[id] = true
		}
	}
	return hits
}

// DefaultTable returns the built-in pattern table covering the Brazilian
// market plus the major international carriers.
func DefaultTable() *Table {
	return MustTable(defaultPatterns)
}

var defaultPatterns = []*Pattern{
	{
		ID:      "correios",
		Name:    "Correios",
		Country: "BR",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^[A-Z]{2}\d{9}BR$`),
			regexp.MustCompile(`^[A-Z]{2}\d{9}[A-Z]{2}$`),
		},
		Length:   Exact(13),
		Checksum: S10Checksum,
		Priority: 90,
		Prefixes: []string{"BR", "PN", "NB", "OO", "SS", "LB", "LE", "RN", "QB", "JT", "AA"},
	},
	{
		ID:      "jadlog",
		Name:    "Jadlog",
		Country: "BR",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^\d{14}$`),
		},
		Length:   Exact(14),
		Checksum: LuhnChecksum,
		Priority: 70,
		Prefixes: []string{"10", "11", "12"},
	},
	{
		ID:      "loggi",
		Name:    "Loggi",
		Country: "BR",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^LOG\d{9,11}$`),
		},
		Length:   Between(12, 14),
		Priority: 60,
		Prefixes: []string{"LO", "LOG"},
	},
	{
		ID:      "totalexpress",
		Name:    "Total Express",
		Country: "BR",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^TE\d{9,10}$`),
		},
		Length:   Between(11, 12),
		Priority: 55,
		Prefixes: []string{"TE"},
	},
	{
		ID:      "sequoia",
		Name:    "Sequoia",
		Country: "BR",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^SEQ\d{8,10}$`),
		},
		Length:   Between(11, 13),
		Priority: 50,
		Prefixes: []string{"SE", "SEQ"},
	},
	{
		ID:      "azulcargo",
		Name:    "Azul Cargo Express",
		Country: "BR",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^AZ\d{9,10}$`),
		},
		Length:   Between(11, 12),
		Priority: 50,
		Prefixes: []string{"AZ"},
	},
	{
		ID:      "mercadoenvios",
		Name:    "Mercado Envios",
		Country: "BR",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^ME\d{9,11}$`),
		},
		Length:   Between(11, 13),
		Priority: 55,
		Prefixes: []string{"ME"},
	},
	{
		ID:      "ups",
		Name:    "UPS",
		Country: "US",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^1Z[A-Z0-9]{6}\d{2}\d{8}$`),
		},
		Length:   Exact(18),
		Priority: 85,
		Prefixes: []string{"1Z"},
	},
	{
		ID:      "fedex",
		Name:    "FedEx",
		Country: "US",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^\d{12}$`),
			regexp.MustCompile(`^\d{15}$`),
		},
		Length:   Between(12, 15),
		Priority: 40,
	},
	{
		ID:      "usps",
		Name:    "USPS",
		Country: "US",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^9[1-5]\d{20}$`),
			regexp.MustCompile(`^[A-Z]{2}\d{9}US$`),
		},
		Length:   Between(13, 22),
		Priority: 65,
		Prefixes: []string{"91", "92", "93", "94", "95"},
	},
	{
		ID:      "dhl",
		Name:    "DHL",
		Country: "DE",
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`^\d{10,11}$`),
			regexp.MustCompile(`^JD\d{18}$`),
		},
		Length:   Between(10, 20),
		Priority: 45,
		Prefixes: []string{"JD"},
	},
}
