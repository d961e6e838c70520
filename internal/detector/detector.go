package detector

import (
	"context"
	"log/slog"
	"sort"

	"rastreio/internal/carrier"
)

// Defaults for detection options.
const (
	DefaultCountry       = "BR"
	DefaultMinConfidence = 50
	DefaultMaxResults    = 5
	DefaultHistoryLimit  = 100
)

// Options configures a single detection call. The zero value gives the
// standard behavior: primary market "BR", international patterns included,
// minimum confidence 50, at most 5 results, history boosting enabled whenever
// a user ID is present.
type Options struct {
	// UserID enables history boosting when set.
	UserID string

	// Country is the caller's market, defaulting to "BR".
	Country string

	// DomesticOnly restricts the candidate set to patterns whose country
	// equals Country.
	DomesticOnly bool

	// MinConfidence excludes results scoring below it from the returned
	// list. Zero means DefaultMinConfidence.
	MinConfidence int

	// MaxResults truncates the ranked list. Zero or negative means
	// DefaultMaxResults.
	MaxResults int

	// NoHistory disables the history boost even when UserID is set.
	NoHistory bool
}

func (o Options) withDefaults() Options {
	if o.Country == "" {
		o.Country = DefaultCountry
	}
	if o.MinConfidence == 0 {
		o.MinConfidence = DefaultMinConfidence
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	return o
}

// Detector runs the scoring loop over the carrier pattern table and layers
// the optional history boost on top. It holds no mutable state and is safe
// for concurrent use.
type Detector struct {
	table   *carrier.Table
	history HistoryReader
	logger  *slog.Logger

	// HistoryLimit bounds how many recent shipments are fetched per
	// detection call.
	HistoryLimit int
}

// New creates a Detector over the given pattern table. history may be nil,
// in which case no boosting is ever applied.
func New(table *carrier.Table, history HistoryReader, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		table:        table,
		history:      history,
		logger:       logger,
		HistoryLimit: DefaultHistoryLimit,
	}
}

// Table returns the pattern table this detector scores against.
func (d *Detector) Table() *carrier.Table {
	return d.table
}

// Detect scores the code against the candidate pattern set and returns the
// ranked results. It never fails for malformed input: a garbage string simply
// yields an empty or low-confidence list.
func (d *Detector) Detect(ctx context.Context, code string, opts Options) []Result {
	opts = opts.withDefaults()

	normalized := Normalize(code)
	if normalized == "" {
		return nil
	}

	prefixHits := d.table.PrefixHits(normalized)

	candidates := d.table.Patterns()
	if opts.DomesticOnly {
		candidates = d.table.ByCountry(opts.Country)
	}

	var results []Result
	for _, p := range candidates {
		r := d.Score(normalized, p, prefixHits[p.ID])
		if r.Confidence >= opts.MinConfidence {
			results = append(results, r)
		}
	}

	if !opts.NoHistory && opts.UserID != "" && d.history != nil {
		if records := d.fetchHistory(ctx, opts.UserID); len(records) > 0 {
			results = Boost(results, normalized, records)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].Score > results[j].Score
	})

	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}

// DetectBest returns the single highest-confidence candidate, or nil when no
// carrier could be confidently identified. A nil return is an expected
// outcome, not an error.
func (d *Detector) DetectBest(ctx context.Context, code string, opts Options) *Result {
	opts.MaxResults = 1
	results := d.Detect(ctx, code, opts)
	if len(results) == 0 {
		return nil
	}
	return &results[0]
}

// ScoreCarrier scores the code against one named pattern only, used for
// authoritative "does this code belong to this carrier" checks. The bool
// return is false when the carrier ID is unknown.
func (d *Detector) ScoreCarrier(code, carrierID string) (Result, bool) {
	p := d.table.ByID(carrierID)
	if p == nil {
		return Result{}, false
	}
	normalized := Normalize(code)
	if normalized == "" {
		return Result{Carrier: p}, true
	}
	return d.Score(normalized, p, d.table.PrefixHits(normalized)[p.ID]), true
}

// fetchHistory reads the user's recent shipments. A store failure or caller
// cancellation degrades to "no boost" rather than failing the detection.
func (d *Detector) fetchHistory(ctx context.Context, userID string) []Record {
	records, err := d.history.RecentShipments(ctx, userID, d.HistoryLimit)
	if err != nil {
		d.logger.Warn("history lookup failed, proceeding without boost",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil
	}
	return records
}
