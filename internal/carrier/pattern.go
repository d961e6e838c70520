package carrier

import (
	"regexp"
)

// ChecksumFunc reports whether a tracking code's internal check digit is
// consistent. Implementations receive an already-normalized code. A nil
// ChecksumFunc on a Pattern means "not applicable", never "invalid".
type ChecksumFunc func(code string) bool

// LengthRange is an inclusive length constraint. Min == Max means exact length.
type LengthRange struct {
	Min int
	Max int
}

// Exact returns a LengthRange that accepts only codes of length n.
func Exact(n int) *LengthRange {
	return &LengthRange{Min: n, Max: n}
}

// Between returns a LengthRange that accepts lengths min through max inclusive.
func Between(min, max int) *LengthRange {
	return &LengthRange{Min: min, Max: max}
}

// Contains reports whether the given length satisfies the constraint.
func (l *LengthRange) Contains(n int) bool {
	return n >= l.Min && n <= l.Max
}

// Pattern describes the tracking-code format of a single carrier. Patterns are
// defined once at startup and never mutated afterwards, so they are safe for
// concurrent reads without synchronization.
type Pattern struct {
	// ID uniquely identifies the carrier (e.g. "correios").
	ID string

	// Name is the carrier's display name.
	Name string

	// Country is the ISO country code the pattern is associated with.
	Country string

	// Regexes is an ordered set of expressions; a code matches the pattern
	// if any of them matches the full code.
	Regexes []*regexp.Regexp

	// Length is an optional length constraint. Nil means unconstrained.
	Length *LengthRange

	// Checksum is an optional check-digit function. Nil means not applicable.
	Checksum ChecksumFunc

	// Priority expresses how distinctive this pattern is relative to others,
	// 0-100. It is a minor tie-break weight, not a primary signal.
	Priority int

	// Prefixes are the leading characters codes of this carrier usually
	// start with, used to build the table's prefix index.
	Prefixes []string
}

// MatchesRegex reports whether any of the pattern's expressions matches code.
func (p *Pattern) MatchesRegex(code string) bool {
	for _, re := range p.Regexes {
		if re.MatchString(code) {
			return true
		}
	}
	return false
}

// MatchesLength reports whether the code length satisfies the pattern's
// constraint. An absent constraint trivially passes.
func (p *Pattern) MatchesLength(code string) bool {
	if p.Length == nil {
		return true
	}
	return p.Length.Contains(len(code))
}
