package booking

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/booking"
	"github.com/ptorrado/predio/internal/http/respond"
)

type Handler struct {
	svc *booking.Service
}

func NewHandler(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/apartment/{apartmentID}", h.listByApartment)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createBookingRequest struct {
	ApartmentID uuid.UUID      `json:"apartmentId"`
	TenantName  string         `json:"tenantName"`
	TenantEmail string         `json:"tenantEmail"`
	TenantPhone string         `json:"tenantPhone"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     *time.Time     `json:"endDate"`
	MonthlyRent int64          `json:"monthlyRent"`
	Deposit     int64          `json:"deposit"`
	Status      booking.Status `json:"status"`
	Notes       string         `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	b, err := h.svc.Create(r.Context(), booking.CreateParams{
		ApartmentID: req.ApartmentID,
		TenantName:  req.TenantName,
		TenantEmail: req.TenantEmail,
		TenantPhone: req.TenantPhone,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		MonthlyRent: req.MonthlyRent,
		Deposit:     req.Deposit,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.List(r.Context(), booking.ListFilter{})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(bookings))
}

func (h *Handler) listByApartment(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := uuid.Parse(chi.URLParam(r, "apartmentID"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid apartment id")
		return
	}

	bookings, err := h.svc.List(r.Context(), booking.ListFilter{ApartmentID: &apartmentID})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(bookings))
}

type updateBookingRequest struct {
	TenantName  *string         `json:"tenantName,omitempty"`
	TenantEmail *string         `json:"tenantEmail,omitempty"`
	TenantPhone *string         `json:"tenantPhone,omitempty"`
	StartDate   *time.Time      `json:"startDate,omitempty"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	MonthlyRent *int64          `json:"monthlyRent,omitempty"`
	Deposit     *int64          `json:"deposit,omitempty"`
	Status      *booking.Status `json:"status,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if req.TenantName != nil {
		b.TenantName = *req.TenantName
	}

	if req.TenantEmail != nil {
		b.TenantEmail = *req.TenantEmail
	}

	if req.TenantPhone != nil {
		b.TenantPhone = *req.TenantPhone
	}

	if req.StartDate != nil {
		b.StartDate = *req.StartDate
	}

	if req.EndDate != nil {
		b.EndDate = req.EndDate
	}

	if req.MonthlyRent != nil {
		b.MonthlyRent = *req.MonthlyRent
	}

	if req.Deposit != nil {
		b.Deposit = *req.Deposit
	}

	if req.Status != nil {
		b.Status = *req.Status
	}

	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), b); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	respond.Message(w, http.StatusOK, "Booking deleted successfully")
}
