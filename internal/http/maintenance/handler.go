package maintenance

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/http/respond"
	"github.com/ptorrado/predio/internal/maintenance"
)

type Handler struct {
	svc *maintenance.Service
}

func NewHandler(svc *maintenance.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes intentionally has no delete: requests are a permanent record of
// work done on the building.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/apartment/{apartmentID}", h.listByApartment)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
}

type createRequestRequest struct {
	ApartmentID   uuid.UUID            `json:"apartmentId"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Priority      maintenance.Priority `json:"priority"`
	Status        maintenance.Status   `json:"status"`
	ReportedDate  time.Time            `json:"reportedDate"`
	ScheduledDate *time.Time           `json:"scheduledDate"`
	Cost          int64                `json:"cost"`
	Notes         string               `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	m, err := h.svc.Create(r.Context(), maintenance.CreateParams{
		ApartmentID:   req.ApartmentID,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Status:        req.Status,
		ReportedDate:  req.ReportedDate,
		ScheduledDate: req.ScheduledDate,
		Cost:          req.Cost,
		Notes:         req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(m))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.List(r.Context(), maintenance.ListFilter{})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(requests))
}

func (h *Handler) listByApartment(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := uuid.Parse(chi.URLParam(r, "apartmentID"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid apartment id")
		return
	}

	requests, err := h.svc.List(r.Context(), maintenance.ListFilter{ApartmentID: &apartmentID})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(requests))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(m))
}

type updateRequestRequest struct {
	Title         *string               `json:"title,omitempty"`
	Description   *string               `json:"description,omitempty"`
	Priority      *maintenance.Priority `json:"priority,omitempty"`
	Status        *maintenance.Status   `json:"status,omitempty"`
	ReportedDate  *time.Time            `json:"reportedDate,omitempty"`
	ScheduledDate *time.Time            `json:"scheduledDate,omitempty"`
	CompletedDate *time.Time            `json:"completedDate,omitempty"`
	Cost          *int64                `json:"cost,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if req.Title != nil {
		m.Title = *req.Title
	}

	if req.Description != nil {
		m.Description = *req.Description
	}

	if req.Priority != nil {
		m.Priority = *req.Priority
	}

	if req.Status != nil {
		m.Status = *req.Status
	}

	if req.ReportedDate != nil {
		m.ReportedDate = *req.ReportedDate
	}

	if req.ScheduledDate != nil {
		m.ScheduledDate = req.ScheduledDate
	}

	if req.CompletedDate != nil {
		m.CompletedDate = req.CompletedDate
	}

	if req.Cost != nil {
		m.Cost = *req.Cost
	}

	if req.Notes != nil {
		m.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), m); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(m))
}
