package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apperr"
	"github.com/ptorrado/predio/internal/payment"
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

const selectPaymentColumns = `
	p.id, p.booking_id, p.apartment_id, p.amount, p.due_date, p.paid_date,
	p.status, p.payment_method, p.notes, p.created_at, p.updated_at,
	a.id, a.number, b.id, b.tenant_name
`

func scanPayment(s scanner) (*payment.Payment, error) {
	var p payment.Payment

	var statusStr string

	var method, notes sql.NullString

	var (
		aptID     uuid.NullUUID
		aptNumber sql.NullString
		bkID      uuid.NullUUID
		bkTenant  sql.NullString
	)

	if err := s.Scan(
		&p.ID, &p.BookingID, &p.ApartmentID, &p.Amount, &p.DueDate, &p.PaidDate,
		&statusStr, &method, &notes, &p.CreatedAt, &p.UpdatedAt,
		&aptID, &aptNumber, &bkID, &bkTenant,
	); err != nil {
		return nil, err
	}

	p.Status = payment.Status(statusStr)
	p.PaymentMethod = method.String
	p.Notes = notes.String

	if aptID.Valid {
		p.Apartment = &payment.ApartmentRef{ID: aptID.UUID, Number: aptNumber.String}
	}

	if bkID.Valid {
		p.Booking = &payment.BookingRef{ID: bkID.UUID, TenantName: bkTenant.String}
	}

	return &p, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	var bookingExists, apartmentExists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1),
			EXISTS(SELECT 1 FROM apartments WHERE id = $2)`,
		p.BookingID, p.ApartmentID,
	).Scan(&bookingExists, &apartmentExists); err != nil {
		return fmt.Errorf("checking references: %w", err)
	}

	if !bookingExists {
		return apperr.NotFound("booking")
	}

	if !apartmentExists {
		return apperr.NotFound("apartment")
	}

	query := `
		INSERT INTO payments (booking_id, apartment_id, amount, due_date, paid_date,
			status, payment_method, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.BookingID,
		p.ApartmentID,
		p.Amount,
		p.DueDate,
		p.PaidDate,
		p.Status,
		p.PaymentMethod,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments p
		LEFT JOIN apartments a ON p.apartment_id = a.id
		LEFT JOIN bookings b ON p.booking_id = b.id
		WHERE p.id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("payment")
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) ListPayments(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments p
		LEFT JOIN apartments a ON p.apartment_id = a.id
		LEFT JOIN bookings b ON p.booking_id = b.id`

	var args []any

	if filter.ApartmentID != nil {
		query += " WHERE p.apartment_id = $1"

		args = append(args, *filter.ApartmentID)
	}

	query += " ORDER BY p.due_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	payments := []*payment.Payment{}

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (s *Store) UpdatePayment(ctx context.Context, p *payment.Payment) error {
	query := `
		UPDATE payments
		SET amount = $1, due_date = $2, paid_date = $3, status = $4,
			payment_method = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		p.Amount,
		p.DueDate,
		p.PaidDate,
		p.Status,
		p.PaymentMethod,
		p.Notes,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating payment: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("payment")
	}

	return nil
}

type reconcileTx struct {
	tx *sql.Tx
}

func (s *Store) BeginReconcile(ctx context.Context) (payment.ReconcileTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning reconcile tx: %w", err)
	}

	return &reconcileTx{tx: tx}, nil
}

func (rtx *reconcileTx) Commit() error   { return rtx.tx.Commit() }
func (rtx *reconcileTx) Rollback() error { return rtx.tx.Rollback() }

// ListPending locks all pending payments for the transaction.
func (rtx *reconcileTx) ListPending(ctx context.Context) ([]*payment.Payment, error) {
	query := `
		SELECT id, booking_id, apartment_id, amount, due_date, paid_date,
			status, payment_method, notes, created_at, updated_at
		FROM payments
		WHERE status = 'pending'
		ORDER BY due_date ASC
		FOR UPDATE`

	rows, err := rtx.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing pending payments: %w", err)
	}
	defer rows.Close()

	payments := []*payment.Payment{}

	for rows.Next() {
		var p payment.Payment

		var statusStr string

		var method, notes sql.NullString

		if err := rows.Scan(
			&p.ID, &p.BookingID, &p.ApartmentID, &p.Amount, &p.DueDate, &p.PaidDate,
			&statusStr, &method, &notes, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning pending payment: %w", err)
		}

		p.Status = payment.Status(statusStr)
		p.PaymentMethod = method.String
		p.Notes = notes.String
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending payment rows: %w", err)
	}

	return payments, nil
}

func (rtx *reconcileTx) MarkPaid(ctx context.Context, id uuid.UUID, paidDate time.Time, method string) error {
	query := `
		UPDATE payments
		SET status = 'paid', paid_date = $1, payment_method = $2, updated_at = NOW()
		WHERE id = $3
	`

	_, err := rtx.tx.ExecContext(ctx, query, paidDate, method, id)
	if err != nil {
		return fmt.Errorf("marking payment paid: %w", err)
	}

	return nil
}
