package detector

import (
	"log/slog"
	"math"

	"rastreio/internal/carrier"
)

// Signal weights. The total achievable score is exactly 100 when every signal
// fires, so confidence is simply the clamped, rounded score.
const (
	weightRegex    = 40
	weightLength   = 15
	weightChecksum = 20
	weightPrefix   = 15
	weightPriority = 10
)

// Criteria names reported in Result.Matched.
const (
	CriterionRegex      = "regex"
	CriterionLength     = "length"
	CriterionChecksum   = "checksum"
	CriterionPrefix     = "prefix"
	CriterionHistory    = "history"
	CriterionSimilarity = "similarity"
)

// Result is a single ranked detection candidate. Results are created fresh
// per call and never persisted.
type Result struct {
	// Carrier is the matched pattern table entry.
	Carrier *carrier.Pattern

	// Confidence is the clamped, rounded score, 0-100.
	Confidence int

	// Score is the raw unclamped accumulator confidence is derived from.
	Score float64

	// Matched lists the signals that awarded nonzero credit. Priority is
	// never listed since it always applies.
	Matched []string
}

// Score computes the context-free confidence of an already-normalized code
// against a single pattern. It is a pure function of its inputs: no I/O, no
// hidden state, deterministic for identical arguments. prefixHit is
// precomputed by the caller via the table's prefix index.
func (d *Detector) Score(code string, p *carrier.Pattern, prefixHit bool) Result {
	result := Result{Carrier: p}

	if p.MatchesRegex(code) {
		result.Score += weightRegex
		result.Matched = append(result.Matched, CriterionRegex)
	}

	// Absence of a length constraint is not a penalty.
	if p.MatchesLength(code) {
		result.Score += weightLength
		result.Matched = append(result.Matched, CriterionLength)
	}

	if p.Checksum != nil && d.runChecksum(p, code) {
		result.Score += weightChecksum
		result.Matched = append(result.Matched, CriterionChecksum)
	}

	if prefixHit {
		result.Score += weightPrefix
		result.Matched = append(result.Matched, CriterionPrefix)
	}

	result.Score += float64(p.Priority) / 100 * weightPriority

	result.Confidence = confidenceFromScore(result.Score)
	return result
}

// runChecksum invokes a pattern's checksum function, converting a panic into
// "signal not awarded" so a malformed checksum cannot take down detection for
// the remaining candidates.
func (d *Detector) runChecksum(p *carrier.Pattern, code string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("carrier checksum panicked",
				slog.String("carrier", p.ID),
				slog.Any("panic", r))
			ok = false
		}
	}()
	return p.Checksum(code)
}

func confidenceFromScore(score float64) int {
	return int(math.Round(math.Min(100, score)))
}
