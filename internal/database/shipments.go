package database

import (
	"context"
	"database/sql"
	"time"

	"rastreio/internal/detector"
)

type Shipment struct {
	ID             int       `json:"id"`
	UserID         string    `json:"user_id"`
	TrackingNumber string    `json:"tracking_number"`
	Carrier        string    `json:"carrier"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ShipmentStore handles database operations for shipments
type ShipmentStore struct {
	db *sql.DB
}

func NewShipmentStore(db *sql.DB) *ShipmentStore {
	return &ShipmentStore{db: db}
}

// Create creates a new shipment
func (s *ShipmentStore) Create(shipment *Shipment) error {
	if shipment.Status == "" {
		shipment.Status = "pending"
	}

	query := `INSERT INTO shipments (user_id, tracking_number, carrier, description, status)
			  VALUES (?, ?, ?, ?, ?)`

	result, err := s.db.Exec(query, shipment.UserID, shipment.TrackingNumber,
		shipment.Carrier, shipment.Description, shipment.Status)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	shipment.ID = int(id)

	return s.db.QueryRow("SELECT created_at, updated_at FROM shipments WHERE id = ?", id).
		Scan(&shipment.CreatedAt, &shipment.UpdatedAt)
}

// GetByUser returns all shipments for a user, most recent first
func (s *ShipmentStore) GetByUser(userID string) ([]Shipment, error) {
	query := `SELECT id, user_id, tracking_number, carrier, description, status,
			  created_at, updated_at
			  FROM shipments WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shipments []Shipment
	for rows.Next() {
		var shipment Shipment
		err := rows.Scan(&shipment.ID, &shipment.UserID, &shipment.TrackingNumber,
			&shipment.Carrier, &shipment.Description, &shipment.Status,
			&shipment.CreatedAt, &shipment.UpdatedAt)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}

	return shipments, rows.Err()
}

// GetByID returns a shipment by ID
func (s *ShipmentStore) GetByID(id int) (*Shipment, error) {
	query := `SELECT id, user_id, tracking_number, carrier, description, status,
			  created_at, updated_at
			  FROM shipments WHERE id = ?`

	var shipment Shipment
	err := s.db.QueryRow(query, id).Scan(&shipment.ID, &shipment.UserID,
		&shipment.TrackingNumber, &shipment.Carrier, &shipment.Description,
		&shipment.Status, &shipment.CreatedAt, &shipment.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &shipment, nil
}

// RecentShipments returns up to limit of the user's most recent shipments as
// (carrier, tracking code) pairs, most-recent-first. It implements
// detector.HistoryReader; the limit keeps the history lookup a bounded,
// recency-biased sample.
func (s *ShipmentStore) RecentShipments(ctx context.Context, userID string, limit int) ([]detector.Record, error) {
	query := `SELECT carrier, tracking_number
			  FROM shipments WHERE user_id = ?
			  ORDER BY created_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []detector.Record
	for rows.Next() {
		var record detector.Record
		if err := rows.Scan(&record.CarrierID, &record.TrackingCode); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
