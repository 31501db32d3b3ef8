package payment

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/http/respond"
	"github.com/ptorrado/predio/internal/importer"
	"github.com/ptorrado/predio/internal/payment"
)

type Handler struct {
	svc       *payment.Service
	importSvc *importer.Service
}

func NewHandler(svc *payment.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/apartment/{apartmentID}", h.listByApartment)
	r.Put("/{id}", h.update)
}

// ImportRoutes mounts the bank-statement upload separately so the JSON
// content-type middleware does not reject the multipart form.
func (h *Handler) ImportRoutes(r chi.Router) {
	r.Post("/", h.importStatement)
}

type createPaymentRequest struct {
	BookingID     uuid.UUID      `json:"bookingId"`
	ApartmentID   uuid.UUID      `json:"apartmentId"`
	Amount        int64          `json:"amount"`
	DueDate       time.Time      `json:"dueDate"`
	PaidDate      *time.Time     `json:"paidDate"`
	Status        payment.Status `json:"status"`
	PaymentMethod string         `json:"paymentMethod"`
	Notes         string         `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := h.svc.Create(r.Context(), payment.CreateParams{
		BookingID:     req.BookingID,
		ApartmentID:   req.ApartmentID,
		Amount:        req.Amount,
		DueDate:       req.DueDate,
		PaidDate:      req.PaidDate,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.List(r.Context(), payment.ListFilter{})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(payments))
}

func (h *Handler) listByApartment(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := uuid.Parse(chi.URLParam(r, "apartmentID"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid apartment id")
		return
	}

	payments, err := h.svc.List(r.Context(), payment.ListFilter{ApartmentID: &apartmentID})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(payments))
}

type updatePaymentRequest struct {
	Amount        *int64          `json:"amount,omitempty"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	PaidDate      *time.Time      `json:"paidDate,omitempty"`
	Status        *payment.Status `json:"status,omitempty"`
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if req.Amount != nil {
		p.Amount = *req.Amount
	}

	if req.DueDate != nil {
		p.DueDate = *req.DueDate
	}

	if req.PaidDate != nil {
		p.PaidDate = req.PaidDate
	}

	if req.Status != nil {
		p.Status = *req.Status
	}

	if req.PaymentMethod != nil {
		p.PaymentMethod = *req.PaymentMethod
	}

	if req.Notes != nil {
		p.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), p); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond.Message(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		respond.Message(w, http.StatusBadRequest, "bank field is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	receipts, err := h.importSvc.Import(bank, file)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Reconcile(r.Context(), receipts)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toReconcileResponse(result))
}
