package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apperr"
	"github.com/ptorrado/predio/internal/booking"
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

const selectBookingColumns = `
	b.id, b.apartment_id, b.tenant_name, b.tenant_email, b.tenant_phone,
	b.start_date, b.end_date, b.monthly_rent, b.deposit, b.status, b.notes,
	b.created_at, b.updated_at,
	a.id, a.number, a.floor, a.bedrooms
`

func scanBooking(s scanner) (*booking.Booking, error) {
	var b booking.Booking

	var statusStr string

	var notes sql.NullString

	var (
		aptID       uuid.NullUUID
		aptNumber   sql.NullString
		aptFloor    sql.NullInt64
		aptBedrooms sql.NullInt64
	)

	if err := s.Scan(
		&b.ID, &b.ApartmentID, &b.TenantName, &b.TenantEmail, &b.TenantPhone,
		&b.StartDate, &b.EndDate, &b.MonthlyRent, &b.Deposit, &statusStr, &notes,
		&b.CreatedAt, &b.UpdatedAt,
		&aptID, &aptNumber, &aptFloor, &aptBedrooms,
	); err != nil {
		return nil, err
	}

	b.Status = booking.Status(statusStr)
	b.Notes = notes.String

	if aptID.Valid {
		b.Apartment = &booking.ApartmentRef{
			ID:       aptID.UUID,
			Number:   aptNumber.String,
			Floor:    int(aptFloor.Int64),
			Bedrooms: int(aptBedrooms.Int64),
		}
	}

	return &b, nil
}

func (s *Store) CreateBooking(ctx context.Context, b *booking.Booking) error {
	// Reference check first: the schema carries no foreign keys so that
	// apartment deletion can leave dangling ids behind (see the apartment
	// store), which makes the existence check explicit here.
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM apartments WHERE id = $1)`, b.ApartmentID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("checking apartment: %w", err)
	}

	if !exists {
		return apperr.NotFound("apartment")
	}

	query := `
		INSERT INTO bookings (apartment_id, tenant_name, tenant_email, tenant_phone,
			start_date, end_date, monthly_rent, deposit, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.ApartmentID,
		b.TenantName,
		b.TenantEmail,
		b.TenantPhone,
		b.StartDate,
		b.EndDate,
		b.MonthlyRent,
		b.Deposit,
		b.Status,
		b.Notes,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating booking: %w", err)
	}

	return nil
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT ` + selectBookingColumns + `
		FROM bookings b
		LEFT JOIN apartments a ON b.apartment_id = a.id
		WHERE b.id = $1`

	b, err := scanBooking(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("booking")
		}

		return nil, fmt.Errorf("getting booking: %w", err)
	}

	return b, nil
}

// ListBookings returns newest-created first; filtered by apartment it
// orders by start date descending instead, matching the per-apartment view.
func (s *Store) ListBookings(ctx context.Context, filter booking.ListFilter) ([]*booking.Booking, error) {
	query := `SELECT ` + selectBookingColumns + `
		FROM bookings b
		LEFT JOIN apartments a ON b.apartment_id = a.id`

	var args []any

	order := " ORDER BY b.created_at DESC"

	if filter.ApartmentID != nil {
		query += " WHERE b.apartment_id = $1"
		order = " ORDER BY b.start_date DESC"

		args = append(args, *filter.ApartmentID)
	}

	rows, err := s.db.QueryContext(ctx, query+order, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*booking.Booking{}

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}

		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}

	return bookings, nil
}

func (s *Store) UpdateBooking(ctx context.Context, b *booking.Booking) error {
	query := `
		UPDATE bookings
		SET tenant_name = $1, tenant_email = $2, tenant_phone = $3, start_date = $4,
			end_date = $5, monthly_rent = $6, deposit = $7, status = $8, notes = $9,
			updated_at = NOW()
		WHERE id = $10
	`

	res, err := s.db.ExecContext(ctx, query,
		b.TenantName,
		b.TenantEmail,
		b.TenantPhone,
		b.StartDate,
		b.EndDate,
		b.MonthlyRent,
		b.Deposit,
		b.Status,
		b.Notes,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating booking: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating booking: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("booking")
	}

	return nil
}

func (s *Store) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("booking")
	}

	return nil
}
