package detector

import (
	"context"
	"math"
)

// Record is one historical shipment: which carrier it used and the tracking
// code it carried. Histories are a bounded, recency-biased sample, never an
// exhaustive scan.
type Record struct {
	CarrierID    string
	TrackingCode string
}

// HistoryReader supplies a user's most recent shipments, most-recent-first.
// Implementations must respect the limit and honor ctx cancellation.
type HistoryReader interface {
	RecentShipments(ctx context.Context, userID string, limit int) ([]Record, error)
}

// Boost weights. Frequency contributes up to 15 points, structural similarity
// up to 10.
const (
	frequencyWeight    = 15
	similarityCap      = 10
	similarityPerMatch = 2
	similarityPrefix   = 3
)

// Boost layers the user's history onto context-free results and returns the
// boosted copy. It is pure with respect to its inputs: the caller fetches the
// history snapshot, so the booster is testable without a live store. Boosts
// only ever raise scores, never lower them.
func Boost(results []Result, code string, records []Record) []Result {
	if len(results) == 0 || len(records) == 0 {
		return results
	}

	counts := make(map[string]int, len(records))
	for _, rec := range records {
		counts[rec.CarrierID]++
	}

	var codePrefix string
	if len(code) >= similarityPrefix {
		codePrefix = code[:similarityPrefix]
	}

	boosted := make([]Result, len(results))
	for i, r := range results {
		boosted[i] = boostOne(r, codePrefix, counts[r.Carrier.ID], len(records), records)
	}
	return boosted
}

func boostOne(r Result, codePrefix string, seen, total int, records []Record) Result {
	if seen > 0 {
		boost := float64(seen) / float64(total) * frequencyWeight
		r.Score += boost
		r.Confidence = clampConfidence(r.Confidence + int(math.Round(boost)))
		r.Matched = append(r.Matched, CriterionHistory)
	}

	if codePrefix != "" {
		matching := 0
		for _, rec := range records {
			if rec.CarrierID != r.Carrier.ID {
				continue
			}
			normalized := Normalize(rec.TrackingCode)
			if len(normalized) >= similarityPrefix && normalized[:similarityPrefix] == codePrefix {
				matching++
			}
		}
		if matching > 0 {
			boost := math.Min(similarityCap, float64(matching*similarityPerMatch))
			r.Score += boost
			r.Confidence = clampConfidence(r.Confidence + int(math.Round(boost)))
			r.Matched = append(r.Matched, CriterionSimilarity)
		}
	}

	return r
}

func clampConfidence(c int) int {
	if c > 100 {
		return 100
	}
	return c
}
