package tenant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apartment"
	"github.com/ptorrado/predio/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=tenant
type Repository interface {
	GetTenant(ctx context.Context, id uuid.UUID) (*Tenant, error)
	ListTenants(ctx context.Context) ([]*Tenant, error)

	// Begin opens the transaction every occupancy mutation runs in.
	Begin(ctx context.Context) (OccupancyTx, error)
}

// OccupancyTx is one database transaction covering a tenant write and its
// apartment-status side effect. GetApartment takes a row lock so two
// requests racing on the same apartment serialize instead of both observing
// it available.
type OccupancyTx interface {
	GetApartment(ctx context.Context, id uuid.UUID) (*apartment.Apartment, error)
	GetTenant(ctx context.Context, id uuid.UUID) (*Tenant, error)
	CreateTenant(ctx context.Context, t *Tenant) error
	UpdateTenant(ctx context.Context, t *Tenant) error
	DeleteTenant(ctx context.Context, id uuid.UUID) (apartmentID uuid.UUID, err error)
	SetApartmentStatus(ctx context.Context, id uuid.UUID, status apartment.Status) error
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
	ApartmentID uuid.UUID
	Name        string
	Email       string
	Phone       string
	StartDate   time.Time
	EndDate     *time.Time
	Status      Status
}

func (p CreateParams) validate() error {
	if p.ApartmentID == uuid.Nil {
		return apperr.Invalid("apartment", "is required")
	}

	if strings.TrimSpace(p.Name) == "" {
		return apperr.Invalid("name", "is required")
	}

	if strings.TrimSpace(p.Email) == "" {
		return apperr.Invalid("email", "is required")
	}

	if strings.TrimSpace(p.Phone) == "" {
		return apperr.Invalid("phone", "is required")
	}

	if p.StartDate.IsZero() {
		return apperr.Invalid("startDate", "is required")
	}

	if p.Status != "" && !p.Status.Valid() {
		return apperr.Invalid("status", "unknown status "+string(p.Status))
	}

	return nil
}

// Create inserts a tenant and flips its apartment to occupied, atomically.
// An occupied apartment rejects the tenant; available and maintenance
// apartments accept one.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Tenant, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin occupancy tx: %w", err)
	}
	defer tx.Rollback()

	apt, err := tx.GetApartment(ctx, params.ApartmentID)
	if err != nil {
		return nil, err
	}

	if apt.Status == apartment.StatusOccupied {
		return nil, apperr.Conflictf("apartment %s is already occupied", apt.Number)
	}

	t := &Tenant{
		ApartmentID: params.ApartmentID,
		Name:        params.Name,
		Email:       params.Email,
		Phone:       params.Phone,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Status:      status,
	}
	if err := tx.CreateTenant(ctx, t); err != nil {
		return nil, err
	}

	if err := tx.SetApartmentStatus(ctx, apt.ID, apartment.StatusOccupied); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit occupancy tx: %w", err)
	}

	apt.Status = apartment.StatusOccupied
	t.Apartment = apt

	return t, nil
}

type UpdateParams struct {
	Name      *string
	Email     *string
	Phone     *string
	StartDate *time.Time
	EndDate   *time.Time
	Status    *Status
}

// Update patches a tenant. When the resulting status is ended, the
// referenced apartment becomes available again. The apartment is freed
// without counting other tenants: one tenancy per apartment is the
// operating assumption.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Tenant, error) {
	if params.Status != nil && !params.Status.Valid() {
		return nil, apperr.Invalid("status", "unknown status "+string(*params.Status))
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin occupancy tx: %w", err)
	}
	defer tx.Rollback()

	t, err := tx.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		t.Name = *params.Name
	}

	if params.Email != nil {
		t.Email = *params.Email
	}

	if params.Phone != nil {
		t.Phone = *params.Phone
	}

	if params.StartDate != nil {
		t.StartDate = *params.StartDate
	}

	if params.EndDate != nil {
		t.EndDate = params.EndDate
	}

	if params.Status != nil {
		t.Status = *params.Status
	}

	if err := tx.UpdateTenant(ctx, t); err != nil {
		return nil, err
	}

	if t.Status == StatusEnded {
		if err := tx.SetApartmentStatus(ctx, t.ApartmentID, apartment.StatusAvailable); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit occupancy tx: %w", err)
	}

	return t, nil
}

// Delete removes a tenant and frees its apartment unconditionally.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin occupancy tx: %w", err)
	}
	defer tx.Rollback()

	apartmentID, err := tx.DeleteTenant(ctx, id)
	if err != nil {
		return err
	}

	if err := tx.SetApartmentStatus(ctx, apartmentID, apartment.StatusAvailable); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit occupancy tx: %w", err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return s.repo.GetTenant(ctx, id)
}

// List returns all tenants with their apartment records joined.
func (s *Service) List(ctx context.Context) ([]*Tenant, error) {
	return s.repo.ListTenants(ctx)
}
