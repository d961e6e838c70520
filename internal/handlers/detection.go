package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"rastreio/internal/cache"
	"rastreio/internal/correction"
	"rastreio/internal/detector"
	"rastreio/internal/validation"
)

// DetectionHandler handles HTTP requests for carrier detection, validation
// and correction suggestions.
type DetectionHandler struct {
	detector  *detector.Detector
	validator *validation.Validator
	suggester *correction.Suggester
	cache     *cache.Manager
}

// NewDetectionHandler creates a new detection handler. cache may be nil.
func NewDetectionHandler(d *detector.Detector, v *validation.Validator, s *correction.Suggester, c *cache.Manager) *DetectionHandler {
	return &DetectionHandler{
		detector:  d,
		validator: v,
		suggester: s,
		cache:     c,
	}
}

// DetectRequest is the request payload for detection endpoints. Optional
// fields fall back to the engine defaults.
type DetectRequest struct {
	Code                 string `json:"code"`
	UserID               string `json:"user_id,omitempty"`
	Country              string `json:"country,omitempty"`
	IncludeInternational *bool  `json:"include_international,omitempty"`
	MinConfidence        *int   `json:"min_confidence,omitempty"`
	MaxResults           *int   `json:"max_results,omitempty"`
	UseHistory           *bool  `json:"use_history,omitempty"`
}

func (req *DetectRequest) options() detector.Options {
	opts := detector.Options{
		UserID:  req.UserID,
		Country: req.Country,
	}
	if req.IncludeInternational != nil {
		opts.DomesticOnly = !*req.IncludeInternational
	}
	if req.MinConfidence != nil {
		opts.MinConfidence = *req.MinConfidence
	}
	if req.MaxResults != nil {
		opts.MaxResults = *req.MaxResults
	}
	if req.UseHistory != nil {
		opts.NoHistory = !*req.UseHistory
	}
	return opts
}

// DetectionResult is the wire representation of a ranked candidate.
type DetectionResult struct {
	Carrier         string   `json:"carrier"`
	CarrierName     string   `json:"carrier_name"`
	Country         string   `json:"country"`
	Confidence      int      `json:"confidence"`
	Score           float64  `json:"score"`
	MatchedCriteria []string `json:"matched_criteria"`
}

func toWire(results []detector.Result) []DetectionResult {
	wire := make([]DetectionResult, 0, len(results))
	for _, r := range results {
		criteria := r.Matched
		if criteria == nil {
			criteria = []string{}
		}
		wire = append(wire, DetectionResult{
			Carrier:         r.Carrier.ID,
			CarrierName:     r.Carrier.Name,
			Country:         r.Carrier.Country,
			Confidence:      r.Confidence,
			Score:           r.Score,
			MatchedCriteria: criteria,
		})
	}
	return wire
}

// Detect handles POST /api/detect
func (h *DetectionHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Invalid JSON in Detect: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	opts := req.options()
	results := h.detect(r, req.Code, opts)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(toWire(results))
}

// DetectBest handles POST /api/detect/best
func (h *DetectionHandler) DetectBest(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Invalid JSON in DetectBest: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	opts := req.options()
	opts.MaxResults = 1
	results := h.detect(r, req.Code, opts)

	w.Header().Set("Content-Type", "application/json")
	if len(results) == 0 {
		// No confident carrier identified: an ordinary outcome, reported
		// as an empty body with 204 rather than an error.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(toWire(results)[0])
}

// detect runs detection, consulting the cache for context-free calls.
// Personalized detections bypass the cache since history changes per call.
func (h *DetectionHandler) detect(r *http.Request, code string, opts detector.Options) []detector.Result {
	cacheable := h.cache != nil && h.cache.IsEnabled() && opts.UserID == ""

	var key string
	if cacheable {
		key = cache.Key(code, opts)
		if results, ok := h.cache.Get(key); ok {
			return results
		}
	}

	results := h.detector.Detect(r.Context(), code, opts)
	if cacheable {
		h.cache.Set(key, results)
	}
	return results
}

// ValidateRequest is the request payload for POST /api/validate.
type ValidateRequest struct {
	Code    string `json:"code"`
	Carrier string `json:"carrier,omitempty"`
}

// Validate handles POST /api/validate
func (h *DetectionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Invalid JSON in Validate: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	var result validation.Result
	if req.Carrier != "" {
		result = h.validator.ValidateForCarrier(r.Context(), req.Code, req.Carrier)
	} else {
		result = h.validator.Validate(r.Context(), req.Code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// SuggestRequest is the request payload for POST /api/suggestions.
type SuggestRequest struct {
	Code    string `json:"code"`
	Country string `json:"country,omitempty"`
}

// SuggestResponse carries the repaired candidates for an invalid code.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest handles POST /api/suggestions
func (h *DetectionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Invalid JSON in Suggest: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	suggestions := h.suggester.Suggest(r.Context(), req.Code, detector.Options{Country: req.Country})
	if suggestions == nil {
		suggestions = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SuggestResponse{Suggestions: suggestions})
}
