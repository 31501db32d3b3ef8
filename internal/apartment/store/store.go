package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ptorrado/predio/internal/apartment"
	"github.com/ptorrado/predio/internal/apperr"
)

const uniqueViolation = "23505"

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

const selectApartmentColumns = `
	id, number, floor, bedrooms, bathrooms, rent, status, amenities, notes, created_at, updated_at
`

// scanApartment reads an apartment row. Expected column order matches
// selectApartmentColumns.
func scanApartment(s scanner) (*apartment.Apartment, error) {
	var a apartment.Apartment

	var statusStr string

	var amenities []byte

	var notes sql.NullString

	if err := s.Scan(
		&a.ID, &a.Number, &a.Floor, &a.Bedrooms, &a.Bathrooms, &a.Rent,
		&statusStr, &amenities, &notes, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.Status = apartment.Status(statusStr)
	a.Notes = notes.String

	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &a.Amenities); err != nil {
			return nil, fmt.Errorf("decoding amenities: %w", err)
		}
	}

	return &a, nil
}

func amenitiesJSON(amenities []string) ([]byte, error) {
	if amenities == nil {
		amenities = []string{}
	}

	return json.Marshal(amenities)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (s *Store) CreateApartment(ctx context.Context, a *apartment.Apartment) error {
	amenities, err := amenitiesJSON(a.Amenities)
	if err != nil {
		return fmt.Errorf("encoding amenities: %w", err)
	}

	query := `
		INSERT INTO apartments (number, floor, bedrooms, bathrooms, rent, status, amenities, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		a.Number,
		a.Floor,
		a.Bedrooms,
		a.Bathrooms,
		a.Rent,
		a.Status,
		amenities,
		a.Notes,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflictf("apartment %s already exists", a.Number)
		}

		return fmt.Errorf("creating apartment: %w", err)
	}

	return nil
}

func (s *Store) GetApartment(ctx context.Context, id uuid.UUID) (*apartment.Apartment, error) {
	query := `SELECT ` + selectApartmentColumns + ` FROM apartments WHERE id = $1`

	a, err := scanApartment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("apartment")
		}

		return nil, fmt.Errorf("getting apartment: %w", err)
	}

	return a, nil
}

func (s *Store) ListApartments(ctx context.Context) ([]*apartment.Apartment, error) {
	query := `SELECT ` + selectApartmentColumns + ` FROM apartments ORDER BY number ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing apartments: %w", err)
	}
	defer rows.Close()

	apartments := []*apartment.Apartment{}

	for rows.Next() {
		a, err := scanApartment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning apartment: %w", err)
		}

		apartments = append(apartments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating apartment rows: %w", err)
	}

	return apartments, nil
}

func (s *Store) UpdateApartment(ctx context.Context, a *apartment.Apartment) error {
	amenities, err := amenitiesJSON(a.Amenities)
	if err != nil {
		return fmt.Errorf("encoding amenities: %w", err)
	}

	query := `
		UPDATE apartments
		SET number = $1, floor = $2, bedrooms = $3, bathrooms = $4, rent = $5,
			status = $6, amenities = $7, notes = $8, updated_at = NOW()
		WHERE id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		a.Number,
		a.Floor,
		a.Bedrooms,
		a.Bathrooms,
		a.Rent,
		a.Status,
		amenities,
		a.Notes,
		a.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflictf("apartment %s already exists", a.Number)
		}

		return fmt.Errorf("updating apartment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating apartment: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("apartment")
	}

	return nil
}

func (s *Store) DeleteApartment(ctx context.Context, id uuid.UUID) error {
	// No cascade: tenants, bookings, payments and maintenance requests keep
	// their apartment id and list projections LEFT JOIN around the gap.
	res, err := s.db.ExecContext(ctx, `DELETE FROM apartments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting apartment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting apartment: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("apartment")
	}

	return nil
}
