package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apperr"
)

type ListFilter struct {
	ApartmentID *uuid.UUID
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=booking
type Repository interface {
	CreateBooking(ctx context.Context, b *Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBookings(ctx context.Context, filter ListFilter) ([]*Booking, error)
	UpdateBooking(ctx context.Context, b *Booking) error
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ApartmentID uuid.UUID
	TenantName  string
	TenantEmail string
	TenantPhone string
	StartDate   time.Time
	EndDate     *time.Time
	MonthlyRent int64
	Deposit     int64
	Status      Status
	Notes       string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Booking, error) {
	if params.ApartmentID == uuid.Nil {
		return nil, apperr.Invalid("apartment", "is required")
	}

	if strings.TrimSpace(params.TenantName) == "" {
		return nil, apperr.Invalid("tenantName", "is required")
	}

	if params.StartDate.IsZero() {
		return nil, apperr.Invalid("startDate", "is required")
	}

	if params.MonthlyRent < 0 || params.Deposit < 0 {
		return nil, apperr.Invalid("monthlyRent", "must not be negative")
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}

	if !status.Valid() {
		return nil, apperr.Invalid("status", "unknown status "+string(status))
	}

	b := &Booking{
		ApartmentID: params.ApartmentID,
		TenantName:  params.TenantName,
		TenantEmail: params.TenantEmail,
		TenantPhone: params.TenantPhone,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		MonthlyRent: params.MonthlyRent,
		Deposit:     params.Deposit,
		Status:      status,
		Notes:       params.Notes,
	}
	if err := s.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Booking, error) {
	return s.repo.ListBookings(ctx, filter)
}

func (s *Service) Update(ctx context.Context, b *Booking) error {
	if !b.Status.Valid() {
		return apperr.Invalid("status", "unknown status "+string(b.Status))
	}

	return s.repo.UpdateBooking(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBooking(ctx, id)
}
