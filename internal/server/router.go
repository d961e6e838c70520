package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"rastreio/internal/handlers"
)

// Handlers groups the HTTP handlers the router wires up.
type Handlers struct {
	Detection *handlers.DetectionHandler
	Carriers  *handlers.CarrierHandler
	Shipments *handlers.ShipmentHandler
	Health    *handlers.HealthHandler
}

// NewRouter builds the API router.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.HealthCheck)
		r.Get("/carriers", h.Carriers.GetCarriers)

		r.Post("/detect", h.Detection.Detect)
		r.Post("/detect/best", h.Detection.DetectBest)
		r.Post("/validate", h.Detection.Validate)
		r.Post("/suggestions", h.Detection.Suggest)

		r.Get("/shipments", h.Shipments.GetShipments)
		r.Post("/shipments", h.Shipments.CreateShipment)
		r.Get("/shipments/{id}", h.Shipments.GetShipmentByID)
	})

	return r
}
