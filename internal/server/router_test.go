package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rastreio/internal/carrier"
	"rastreio/internal/correction"
	"rastreio/internal/database"
	"rastreio/internal/detector"
	"rastreio/internal/handlers"
	"rastreio/internal/validation"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	table := carrier.DefaultTable()
	d := detector.New(table, db.Shipments, nil)
	v := validation.New(d, nil)
	s := correction.New(d, nil)

	return NewRouter(Handlers{
		Detection: handlers.NewDetectionHandler(d, v, s, nil),
		Carriers:  handlers.NewCarrierHandler(table),
		Shipments: handlers.NewShipmentHandler(db, v),
		Health:    handlers.NewHealthHandler(db),
	})
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "health", method: "GET", path: "/api/health", wantStatus: http.StatusOK},
		{name: "carriers", method: "GET", path: "/api/carriers", wantStatus: http.StatusOK},
		{name: "detect", method: "POST", path: "/api/detect", body: `{"code":"BR123456789BR"}`, wantStatus: http.StatusOK},
		{name: "detect best", method: "POST", path: "/api/detect/best", body: `{"code":"AA123456785BR"}`, wantStatus: http.StatusOK},
		{name: "validate", method: "POST", path: "/api/validate", body: `{"code":"AA123456785BR"}`, wantStatus: http.StatusOK},
		{name: "suggestions", method: "POST", path: "/api/suggestions", body: `{"code":"AA123456785"}`, wantStatus: http.StatusOK},
		{name: "shipments without user", method: "GET", path: "/api/shipments", wantStatus: http.StatusBadRequest},
		{name: "unknown route", method: "GET", path: "/api/nothing", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: "GET", path: "/api/detect", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, expected %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_CreateAndFetchShipment(t *testing.T) {
	router := newTestRouter(t)

	body := `{"user_id": "u1", "tracking_number": "AA123456785BR", "description": "books"}`
	req := httptest.NewRequest("POST", "/api/shipments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Create status = %d, expected 201: %s", w.Code, w.Body.String())
	}
	var created handlers.CreateShipmentResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.Shipment.Carrier != "correios" {
		t.Errorf("Carrier = %q, expected correios", created.Shipment.Carrier)
	}

	req = httptest.NewRequest("GET", "/api/shipments?user_id=u1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("List status = %d, expected 200", w.Code)
	}
	var shipments []database.Shipment
	if err := json.NewDecoder(w.Body).Decode(&shipments); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(shipments) != 1 || shipments[0].TrackingNumber != "AA123456785BR" {
		t.Errorf("Shipments = %+v, expected the created one", shipments)
	}
}
