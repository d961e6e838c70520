package correction

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"rastreio/internal/detector"
)

// AcceptThreshold is the confidence a repaired variant must reach before it
// is offered to the user. Stricter than ordinary validation: a suggested fix
// has to be highly trustworthy.
const AcceptThreshold = 80

// bareS10 matches a Correios-style code missing its trailing country suffix,
// a common truncation.
var bareS10 = regexp.MustCompile(`^[A-Z]{2}\d{9}$`)

// Substitution tables for common OCR and typing confusions.
var (
	letterToDigit = strings.NewReplacer("O", "0", "I", "1", "S", "5")
	digitToLetter = strings.NewReplacer("0", "O", "1", "I", "5", "S")
)

// Suggester generates repaired variants of an invalid tracking code and
// keeps only those that re-validate at high confidence.
type Suggester struct {
	detector *detector.Detector
	logger   *slog.Logger
}

// New creates a Suggester on top of the given detector.
func New(d *detector.Detector, logger *slog.Logger) *Suggester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggester{detector: d, logger: logger}
}

// Suggest returns corrected candidates for the code, in generation order.
// Each candidate is re-validated independently through DetectBest and kept
// only when it reaches AcceptThreshold. An empty list is an ordinary outcome.
func (s *Suggester) Suggest(ctx context.Context, code string, opts detector.Options) []string {
	normalized := detector.Normalize(code)
	if normalized == "" {
		return nil
	}

	// Dedup against what the caller actually submitted, so a cleaned-up
	// version of a messy input still counts as a fix.
	seen := map[string]bool{strings.ToUpper(strings.TrimSpace(code)): true}
	suggestions := []string{}

	for _, candidate := range s.candidates(code, normalized) {
		if candidate == "" || seen[candidate] {
			continue
		}
		seen[candidate] = true

		best := s.detector.DetectBest(ctx, candidate, opts)
		if best == nil || best.Confidence < AcceptThreshold {
			continue
		}
		s.logger.Debug("accepted correction candidate",
			slog.String("original", normalized),
			slog.String("candidate", candidate),
			slog.Int("confidence", best.Confidence))
		suggestions = append(suggestions, candidate)
	}

	return suggestions
}

// candidates generates repaired variants. Each repair is attempted
// independently, never combined.
func (s *Suggester) candidates(raw, normalized string) []string {
	var out []string

	// Whitespace-collapsed version, when it differs from the raw input.
	collapsed := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if collapsed != strings.ToUpper(raw) {
		out = append(out, collapsed)
	}

	// Bare prefix + 9 digits: likely a Correios code missing its country
	// suffix.
	if bareS10.MatchString(normalized) {
		out = append(out, normalized+"BR")
	}

	// Duplicated country suffix: collapse the redundant pair.
	if strings.Contains(normalized, "BRBR") {
		out = append(out, strings.ReplaceAll(normalized, "BRBR", "BR"))
	}

	// OCR confusions applied uniformly across the string, in both
	// directions, plus a structure-aware repair for postal-shaped codes.
	out = append(out, structuralRepair(normalized))
	out = append(out, letterToDigit.Replace(normalized))
	out = append(out, digitToLetter.Replace(normalized))

	return out
}

// structuralRepair fixes a 13-character postal-shaped code whose letter and
// digit zones got confused by OCR: letters in the nine-digit serial become
// digits, digits in the surrounding letter pairs become letters. Returns ""
// when the code doesn't have the postal shape.
func structuralRepair(code string) string {
	if len(code) != 13 {
		return ""
	}
	prefix := digitToLetter.Replace(code[:2])
	serial := letterToDigit.Replace(code[2:11])
	suffix := digitToLetter.Replace(code[11:])

	repaired := prefix + serial + suffix
	if repaired == code {
		return ""
	}
	return repaired
}
