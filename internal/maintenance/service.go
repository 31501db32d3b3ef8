package maintenance

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

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=maintenance
type Repository interface {
	CreateRequest(ctx context.Context, r *Request) error
	GetRequest(ctx context.Context, id uuid.UUID) (*Request, error)
	ListRequests(ctx context.Context, filter ListFilter) ([]*Request, error)
	UpdateRequest(ctx context.Context, r *Request) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ApartmentID   uuid.UUID
	Title         string
	Description   string
	Priority      Priority
	Status        Status
	ReportedDate  time.Time
	ScheduledDate *time.Time
	Cost          int64
	Notes         string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Request, error) {
	if params.ApartmentID == uuid.Nil {
		return nil, apperr.Invalid("apartment", "is required")
	}

	if strings.TrimSpace(params.Title) == "" {
		return nil, apperr.Invalid("title", "is required")
	}

	if strings.TrimSpace(params.Description) == "" {
		return nil, apperr.Invalid("description", "is required")
	}

	if params.Cost < 0 {
		return nil, apperr.Invalid("cost", "must not be negative")
	}

	priority := params.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	if !priority.Valid() {
		return nil, apperr.Invalid("priority", "unknown priority "+string(priority))
	}

	status := params.Status
	if status == "" {
		status = StatusReported
	}

	if !status.Valid() {
		return nil, apperr.Invalid("status", "unknown status "+string(status))
	}

	reported := params.ReportedDate
	if reported.IsZero() {
		reported = time.Now()
	}

	r := &Request{
		ApartmentID:   params.ApartmentID,
		Title:         params.Title,
		Description:   params.Description,
		Priority:      priority,
		Status:        status,
		ReportedDate:  reported,
		ScheduledDate: params.ScheduledDate,
		Cost:          params.Cost,
		Notes:         params.Notes,
	}
	if err := s.repo.CreateRequest(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Request, error) {
	return s.repo.GetRequest(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Request, error) {
	return s.repo.ListRequests(ctx, filter)
}

func (s *Service) Update(ctx context.Context, r *Request) error {
	if !r.Priority.Valid() {
		return apperr.Invalid("priority", "unknown priority "+string(r.Priority))
	}

	if !r.Status.Valid() {
		return apperr.Invalid("status", "unknown status "+string(r.Status))
	}

	if r.Cost < 0 {
		return apperr.Invalid("cost", "must not be negative")
	}

	return s.repo.UpdateRequest(ctx, r)
}
