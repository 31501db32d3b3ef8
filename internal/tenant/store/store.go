package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apartment"
	"github.com/ptorrado/predio/internal/apperr"
	"github.com/ptorrado/predio/internal/tenant"
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

const selectTenantColumns = `
	t.id, t.apartment_id, t.name, t.email, t.phone, t.start_date, t.end_date, t.status,
	t.created_at, t.updated_at,
	a.id, a.number, a.floor, a.bedrooms, a.bathrooms, a.rent, a.status, a.amenities, a.notes,
	a.created_at, a.updated_at
`

// scanTenant reads a tenant row with its LEFT JOINed apartment. The
// apartment columns are all NULL when the apartment was deleted; the
// tenant then carries a dangling apartment id and a nil Apartment.
func scanTenant(s scanner) (*tenant.Tenant, error) {
	var t tenant.Tenant

	var statusStr string

	var (
		aptID        uuid.NullUUID
		aptNumber    sql.NullString
		aptFloor     sql.NullInt64
		aptBedrooms  sql.NullInt64
		aptBathrooms sql.NullFloat64
		aptRent      sql.NullInt64
		aptStatus    sql.NullString
		aptAmenities []byte
		aptNotes     sql.NullString
		aptCreatedAt sql.NullTime
		aptUpdatedAt sql.NullTime
	)

	if err := s.Scan(
		&t.ID, &t.ApartmentID, &t.Name, &t.Email, &t.Phone, &t.StartDate, &t.EndDate, &statusStr,
		&t.CreatedAt, &t.UpdatedAt,
		&aptID, &aptNumber, &aptFloor, &aptBedrooms, &aptBathrooms, &aptRent, &aptStatus,
		&aptAmenities, &aptNotes, &aptCreatedAt, &aptUpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = tenant.Status(statusStr)

	if aptID.Valid {
		apt := &apartment.Apartment{
			ID:        aptID.UUID,
			Number:    aptNumber.String,
			Floor:     int(aptFloor.Int64),
			Bedrooms:  int(aptBedrooms.Int64),
			Bathrooms: aptBathrooms.Float64,
			Rent:      aptRent.Int64,
			Status:    apartment.Status(aptStatus.String),
			Notes:     aptNotes.String,
			CreatedAt: aptCreatedAt.Time,
		}

		if aptUpdatedAt.Valid {
			apt.UpdatedAt = &aptUpdatedAt.Time
		}

		if len(aptAmenities) > 0 {
			if err := json.Unmarshal(aptAmenities, &apt.Amenities); err != nil {
				return nil, fmt.Errorf("decoding amenities: %w", err)
			}
		}

		t.Apartment = apt
	}

	return &t, nil
}

func (s *Store) GetTenant(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	query := `SELECT ` + selectTenantColumns + `
		FROM tenants t
		LEFT JOIN apartments a ON t.apartment_id = a.id
		WHERE t.id = $1`

	t, err := scanTenant(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("tenant")
		}

		return nil, fmt.Errorf("getting tenant: %w", err)
	}

	return t, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]*tenant.Tenant, error) {
	query := `SELECT ` + selectTenantColumns + `
		FROM tenants t
		LEFT JOIN apartments a ON t.apartment_id = a.id
		ORDER BY t.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	tenants := []*tenant.Tenant{}

	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tenant: %w", err)
		}

		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenant rows: %w", err)
	}

	return tenants, nil
}

type occupancyTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (tenant.OccupancyTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning occupancy tx: %w", err)
	}

	return &occupancyTx{tx: tx}, nil
}

func (otx *occupancyTx) Commit() error   { return otx.tx.Commit() }
func (otx *occupancyTx) Rollback() error { return otx.tx.Rollback() }

// GetApartment locks the apartment row for the duration of the transaction.
func (otx *occupancyTx) GetApartment(ctx context.Context, id uuid.UUID) (*apartment.Apartment, error) {
	query := `
		SELECT id, number, floor, bedrooms, bathrooms, rent, status, amenities, notes, created_at, updated_at
		FROM apartments
		WHERE id = $1
		FOR UPDATE`

	var a apartment.Apartment

	var statusStr string

	var amenities []byte

	var notes sql.NullString

	err := otx.tx.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Number, &a.Floor, &a.Bedrooms, &a.Bathrooms, &a.Rent,
		&statusStr, &amenities, &notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("apartment")
		}

		return nil, fmt.Errorf("locking apartment: %w", err)
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

func (otx *occupancyTx) GetTenant(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	query := `
		SELECT id, apartment_id, name, email, phone, start_date, end_date, status, created_at, updated_at
		FROM tenants
		WHERE id = $1
		FOR UPDATE`

	var t tenant.Tenant

	var statusStr string

	err := otx.tx.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.ApartmentID, &t.Name, &t.Email, &t.Phone,
		&t.StartDate, &t.EndDate, &statusStr, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("tenant")
		}

		return nil, fmt.Errorf("locking tenant: %w", err)
	}

	t.Status = tenant.Status(statusStr)

	return &t, nil
}

func (otx *occupancyTx) CreateTenant(ctx context.Context, t *tenant.Tenant) error {
	query := `
		INSERT INTO tenants (apartment_id, name, email, phone, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := otx.tx.QueryRowContext(ctx, query,
		t.ApartmentID,
		t.Name,
		t.Email,
		t.Phone,
		t.StartDate,
		t.EndDate,
		t.Status,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating tenant: %w", err)
	}

	return nil
}

func (otx *occupancyTx) UpdateTenant(ctx context.Context, t *tenant.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $1, email = $2, phone = $3, start_date = $4, end_date = $5, status = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := otx.tx.ExecContext(ctx, query,
		t.Name,
		t.Email,
		t.Phone,
		t.StartDate,
		t.EndDate,
		t.Status,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating tenant: %w", err)
	}

	return nil
}

func (otx *occupancyTx) DeleteTenant(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var apartmentID uuid.UUID

	err := otx.tx.QueryRowContext(ctx,
		`DELETE FROM tenants WHERE id = $1 RETURNING apartment_id`, id,
	).Scan(&apartmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, apperr.NotFound("tenant")
		}

		return uuid.Nil, fmt.Errorf("deleting tenant: %w", err)
	}

	return apartmentID, nil
}

// SetApartmentStatus flips the apartment status. A missing apartment is not
// an error: tenants may reference an apartment that was deleted.
func (otx *occupancyTx) SetApartmentStatus(ctx context.Context, id uuid.UUID, status apartment.Status) error {
	_, err := otx.tx.ExecContext(ctx,
		`UPDATE apartments SET status = $1, updated_at = NOW() WHERE id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("setting apartment status: %w", err)
	}

	return nil
}
