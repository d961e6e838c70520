package handlers

import (
	"encoding/json"
	"net/http"

	"rastreio/internal/carrier"
)

// CarrierHandler handles HTTP requests for the carrier pattern table
type CarrierHandler struct {
	table *carrier.Table
}

// NewCarrierHandler creates a new carrier handler
func NewCarrierHandler(table *carrier.Table) *CarrierHandler {
	return &CarrierHandler{table: table}
}

// CarrierInfo is the wire representation of a pattern table entry.
type CarrierInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Priority    int    `json:"priority"`
	HasChecksum bool   `json:"has_checksum"`
}

// GetCarriers handles GET /api/carriers
func (h *CarrierHandler) GetCarriers(w http.ResponseWriter, r *http.Request) {
	// Optionally filter by country
	country := r.URL.Query().Get("country")

	carriers := []CarrierInfo{}
	for _, p := range h.table.Patterns() {
		if country != "" && p.Country != country {
			continue
		}
		carriers = append(carriers, CarrierInfo{
			ID:          p.ID,
			Name:        p.Name,
			Country:     p.Country,
			Priority:    p.Priority,
			HasChecksum: p.Checksum != nil,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(carriers)
}
