package apartment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=apartment
type Repository interface {
	CreateApartment(ctx context.Context, a *Apartment) error
	GetApartment(ctx context.Context, id uuid.UUID) (*Apartment, error)
	ListApartments(ctx context.Context) ([]*Apartment, error)
	UpdateApartment(ctx context.Context, a *Apartment) error
	DeleteApartment(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Number    string
	Floor     int
	Bedrooms  int
	Bathrooms float64
	Rent      int64
	Status    Status
	Amenities []string
	Notes     string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Apartment, error) {
	if strings.TrimSpace(params.Number) == "" {
		return nil, apperr.Invalid("number", "is required")
	}

	if params.Rent < 0 {
		return nil, apperr.Invalid("rent", "must not be negative")
	}

	status := params.Status
	if status == "" {
		status = StatusAvailable
	}

	if !status.Valid() {
		return nil, apperr.Invalid("status", "unknown status "+string(status))
	}

	a := &Apartment{
		Number:    params.Number,
		Floor:     params.Floor,
		Bedrooms:  params.Bedrooms,
		Bathrooms: params.Bathrooms,
		Rent:      params.Rent,
		Status:    status,
		Amenities: params.Amenities,
		Notes:     params.Notes,
	}
	if err := s.repo.CreateApartment(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Apartment, error) {
	return s.repo.GetApartment(ctx, id)
}

// List returns all apartments ordered by number.
func (s *Service) List(ctx context.Context) ([]*Apartment, error) {
	return s.repo.ListApartments(ctx)
}

func (s *Service) Update(ctx context.Context, a *Apartment) error {
	if strings.TrimSpace(a.Number) == "" {
		return apperr.Invalid("number", "is required")
	}

	if a.Rent < 0 {
		return apperr.Invalid("rent", "must not be negative")
	}

	if !a.Status.Valid() {
		return apperr.Invalid("status", "unknown status "+string(a.Status))
	}

	return s.repo.UpdateApartment(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteApartment(ctx, id)
}
