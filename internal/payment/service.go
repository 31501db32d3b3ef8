package payment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apperr"
)

const reconcileMethod = "bank transfer"

type ListFilter struct {
	ApartmentID *uuid.UUID
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context, filter ListFilter) ([]*Payment, error)
	UpdatePayment(ctx context.Context, p *Payment) error

	BeginReconcile(ctx context.Context) (ReconcileTx, error)
}

// ReconcileTx locks the pending payments for the duration of a statement
// reconciliation so two concurrent uploads cannot settle the same
// installment twice.
type ReconcileTx interface {
	ListPending(ctx context.Context) ([]*Payment, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidDate time.Time, method string) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	BookingID     uuid.UUID
	ApartmentID   uuid.UUID
	Amount        int64
	DueDate       time.Time
	PaidDate      *time.Time
	Status        Status
	PaymentMethod string
	Notes         string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Payment, error) {
	if params.BookingID == uuid.Nil {
		return nil, apperr.Invalid("booking", "is required")
	}

	if params.ApartmentID == uuid.Nil {
		return nil, apperr.Invalid("apartment", "is required")
	}

	if params.Amount < 0 {
		return nil, apperr.Invalid("amount", "must not be negative")
	}

	if params.DueDate.IsZero() {
		return nil, apperr.Invalid("dueDate", "is required")
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}

	if !status.Valid() {
		return nil, apperr.Invalid("status", "unknown status "+string(status))
	}

	p := &Payment{
		BookingID:     params.BookingID,
		ApartmentID:   params.ApartmentID,
		Amount:        params.Amount,
		DueDate:       params.DueDate,
		PaidDate:      params.PaidDate,
		Status:        status,
		PaymentMethod: params.PaymentMethod,
		Notes:         params.Notes,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, filter)
}

func (s *Service) Update(ctx context.Context, p *Payment) error {
	if !p.Status.Valid() {
		return apperr.Invalid("status", "unknown status "+string(p.Status))
	}

	return s.repo.UpdatePayment(ctx, p)
}

type ReconcileResult struct {
	Matched   []*Payment
	Unmatched []Receipt
}

// Reconcile matches bank-statement credits against pending payments and
// marks the matched ones paid, all inside one store transaction. Each
// receipt settles at most the earliest-due pending payment with the same
// amount; receipts with no counterpart come back unmatched.
func (s *Service) Reconcile(ctx context.Context, receipts []Receipt) (*ReconcileResult, error) {
	if len(receipts) == 0 {
		return &ReconcileResult{}, nil
	}

	tx, err := s.repo.BeginReconcile(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reconcile: %w", err)
	}
	defer tx.Rollback()

	pending, err := tx.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending payments: %w", err)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DueDate.Before(pending[j].DueDate)
	})

	byAmount := make(map[int64][]*Payment)
	for _, p := range pending {
		byAmount[p.Amount] = append(byAmount[p.Amount], p)
	}

	result := &ReconcileResult{}

	for _, r := range receipts {
		candidates := byAmount[r.Amount]
		if len(candidates) == 0 {
			result.Unmatched = append(result.Unmatched, r)
			continue
		}

		p := candidates[0]
		byAmount[r.Amount] = candidates[1:]

		if err := tx.MarkPaid(ctx, p.ID, r.Date, reconcileMethod); err != nil {
			return nil, fmt.Errorf("mark payment paid: %w", err)
		}

		paidDate := r.Date
		p.PaidDate = &paidDate
		p.Status = StatusPaid
		p.PaymentMethod = reconcileMethod
		result.Matched = append(result.Matched, p)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reconcile: %w", err)
	}

	return result, nil
}
