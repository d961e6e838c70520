package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"rastreio/internal/database"
	"rastreio/internal/detector"
	"rastreio/internal/validation"
)

// ShipmentHandler handles HTTP requests for shipments. Tracking codes are
// validated before being persisted.
type ShipmentHandler struct {
	db        *database.DB
	validator *validation.Validator
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(db *database.DB, validator *validation.Validator) *ShipmentHandler {
	return &ShipmentHandler{db: db, validator: validator}
}

// GetShipments handles GET /api/shipments?user_id=...
func (h *ShipmentHandler) GetShipments(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "Missing user_id", http.StatusBadRequest)
		return
	}

	shipments, err := h.db.Shipments.GetByUser(userID)
	if err != nil {
		log.Printf("ERROR: Failed to get shipments for user %s: %v", userID, err)
		http.Error(w, fmt.Sprintf("Failed to get shipments: %v", err), http.StatusInternalServerError)
		return
	}
	if shipments == nil {
		shipments = []database.Shipment{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(shipments)
}

// CreateShipmentResponse wraps the created shipment with the validation
// outcome that gated it.
type CreateShipmentResponse struct {
	Shipment   database.Shipment `json:"shipment"`
	Validation validation.Result `json:"validation"`
}

// CreateShipment handles POST /api/shipments
func (h *ShipmentHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	var shipment database.Shipment
	if err := json.NewDecoder(r.Body).Decode(&shipment); err != nil {
		log.Printf("ERROR: Invalid JSON in CreateShipment: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if shipment.UserID == "" {
		http.Error(w, "Missing user_id", http.StatusBadRequest)
		return
	}

	// Validate the tracking code before persisting. A named carrier is
	// confirmed against that specific pattern; otherwise the best detected
	// carrier is filled in.
	var result validation.Result
	if shipment.Carrier != "" {
		result = h.validator.ValidateForCarrier(r.Context(), shipment.TrackingNumber, shipment.Carrier)
	} else {
		result = h.validator.Validate(r.Context(), shipment.TrackingNumber)
	}

	if !result.IsValid {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(CreateShipmentResponse{Validation: result})
		return
	}

	shipment.TrackingNumber = detector.Normalize(shipment.TrackingNumber)
	if shipment.Carrier == "" {
		shipment.Carrier = result.Carrier
	}

	if err := h.db.Shipments.Create(&shipment); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			log.Printf("ERROR: Duplicate tracking number for user %s: %s", shipment.UserID, shipment.TrackingNumber)
			http.Error(w, "Tracking number already exists", http.StatusConflict)
			return
		}
		log.Printf("ERROR: Failed to create shipment: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create shipment: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateShipmentResponse{Shipment: shipment, Validation: result})
}

// GetShipmentByID handles GET /api/shipments/{id}
func (h *ShipmentHandler) GetShipmentByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid shipment ID", http.StatusBadRequest)
		return
	}

	shipment, err := h.db.Shipments.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Shipment not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to get shipment %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to get shipment: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(shipment)
}
