package apartment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apartment"
	"github.com/ptorrado/predio/internal/http/respond"
)

type Handler struct {
	svc *apartment.Service
}

func NewHandler(svc *apartment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createApartmentRequest struct {
	Number    string           `json:"number"`
	Floor     int              `json:"floor"`
	Bedrooms  int              `json:"bedrooms"`
	Bathrooms float64          `json:"bathrooms"`
	Rent      int64            `json:"rent"`
	Status    apartment.Status `json:"status"`
	Amenities []string         `json:"amenities"`
	Notes     string           `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createApartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	apt, err := h.svc.Create(r.Context(), apartment.CreateParams{
		Number:    req.Number,
		Floor:     req.Floor,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		Rent:      req.Rent,
		Status:    req.Status,
		Amenities: req.Amenities,
		Notes:     req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(apt))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	apts, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(apts))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	apt, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(apt))
}

type updateApartmentRequest struct {
	Number    *string           `json:"number,omitempty"`
	Floor     *int              `json:"floor,omitempty"`
	Bedrooms  *int              `json:"bedrooms,omitempty"`
	Bathrooms *float64          `json:"bathrooms,omitempty"`
	Rent      *int64            `json:"rent,omitempty"`
	Status    *apartment.Status `json:"status,omitempty"`
	Amenities []string          `json:"amenities,omitempty"`
	Notes     *string           `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateApartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	apt, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if req.Number != nil {
		apt.Number = *req.Number
	}

	if req.Floor != nil {
		apt.Floor = *req.Floor
	}

	if req.Bedrooms != nil {
		apt.Bedrooms = *req.Bedrooms
	}

	if req.Bathrooms != nil {
		apt.Bathrooms = *req.Bathrooms
	}

	if req.Rent != nil {
		apt.Rent = *req.Rent
	}

	if req.Status != nil {
		apt.Status = *req.Status
	}

	if req.Amenities != nil {
		apt.Amenities = req.Amenities
	}

	if req.Notes != nil {
		apt.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), apt); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(apt))
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

	respond.Message(w, http.StatusOK, "Apartment deleted successfully")
}
