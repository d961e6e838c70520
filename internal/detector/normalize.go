package detector

import (
	"strings"
)

// Normalize prepares a raw tracking code for scoring: trims surrounding
// whitespace, uppercases, and strips internal whitespace. Normalizing an
// already-normalized code is a no-op.
func Normalize(code string) string {
	fields := strings.Fields(code)
	return strings.ToUpper(strings.Join(fields, ""))
}
