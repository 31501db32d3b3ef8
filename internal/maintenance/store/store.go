package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apperr"
	"github.com/ptorrado/predio/internal/maintenance"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectRequestColumns = `
	m.id, m.apartment_id, m.title, m.description, m.priority, m.status,
	m.reported_date, m.scheduled_date, m.completed_date, m.cost, m.notes,
	m.created_at, m.updated_at
`

func scanRequest(s scanner, withApartment bool) (*maintenance.Request, error) {
	var r maintenance.Request

	var priorityStr, statusStr string

	var notes sql.NullString

	var (
		aptID     uuid.NullUUID
		aptNumber sql.NullString
		aptFloor  sql.NullInt64
	)

	dest := []any{
		&r.ID, &r.ApartmentID, &r.Title, &r.Description, &priorityStr, &statusStr,
		&r.ReportedDate, &r.ScheduledDate, &r.CompletedDate, &r.Cost, &notes,
		&r.CreatedAt, &r.UpdatedAt,
	}
	if withApartment {
		dest = append(dest, &aptID, &aptNumber, &aptFloor)
	}

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	r.Priority = maintenance.Priority(priorityStr)
	r.Status = maintenance.Status(statusStr)
	r.Notes = notes.String

	if aptID.Valid {
		r.Apartment = &maintenance.ApartmentRef{
			ID:     aptID.UUID,
			Number: aptNumber.String,
			Floor:  int(aptFloor.Int64),
		}
	}

	return &r, nil
}

func (s *Store) CreateRequest(ctx context.Context, r *maintenance.Request) error {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM apartments WHERE id = $1)`, r.ApartmentID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("checking apartment: %w", err)
	}

	if !exists {
		return apperr.NotFound("apartment")
	}

	query := `
		INSERT INTO maintenance_requests (apartment_id, title, description, priority, status,
			reported_date, scheduled_date, completed_date, cost, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.ApartmentID,
		r.Title,
		r.Description,
		r.Priority,
		r.Status,
		r.ReportedDate,
		r.ScheduledDate,
		r.CompletedDate,
		r.Cost,
		r.Notes,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating maintenance request: %w", err)
	}

	return nil
}

func (s *Store) GetRequest(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	query := `SELECT ` + selectRequestColumns + `, a.id, a.number, a.floor
		FROM maintenance_requests m
		LEFT JOIN apartments a ON m.apartment_id = a.id
		WHERE m.id = $1`

	r, err := scanRequest(s.db.QueryRowContext(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("maintenance request")
		}

		return nil, fmt.Errorf("getting maintenance request: %w", err)
	}

	return r, nil
}

// ListRequests orders newest-reported first. The per-apartment variant
// skips the apartment join, mirroring the dashboard views it serves.
func (s *Store) ListRequests(ctx context.Context, filter maintenance.ListFilter) ([]*maintenance.Request, error) {
	withApartment := filter.ApartmentID == nil

	var (
		query string
		args  []any
	)

	if withApartment {
		query = `SELECT ` + selectRequestColumns + `, a.id, a.number, a.floor
			FROM maintenance_requests m
			LEFT JOIN apartments a ON m.apartment_id = a.id
			ORDER BY m.reported_date DESC`
	} else {
		query = `SELECT ` + selectRequestColumns + `
			FROM maintenance_requests m
			WHERE m.apartment_id = $1
			ORDER BY m.reported_date DESC`

		args = append(args, *filter.ApartmentID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing maintenance requests: %w", err)
	}
	defer rows.Close()

	requests := []*maintenance.Request{}

	for rows.Next() {
		r, err := scanRequest(rows, withApartment)
		if err != nil {
			return nil, fmt.Errorf("scanning maintenance request: %w", err)
		}

		requests = append(requests, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating maintenance rows: %w", err)
	}

	return requests, nil
}

func (s *Store) UpdateRequest(ctx context.Context, r *maintenance.Request) error {
	query := `
		UPDATE maintenance_requests
		SET title = $1, description = $2, priority = $3, status = $4, reported_date = $5,
			scheduled_date = $6, completed_date = $7, cost = $8, notes = $9, updated_at = NOW()
		WHERE id = $10
	`

	res, err := s.db.ExecContext(ctx, query,
		r.Title,
		r.Description,
		r.Priority,
		r.Status,
		r.ReportedDate,
		r.ScheduledDate,
		r.CompletedDate,
		r.Cost,
		r.Notes,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating maintenance request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating maintenance request: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("maintenance request")
	}

	return nil
}
