package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/payment"
)

type paymentResponse struct {
	ID            uuid.UUID          `json:"id"`
	BookingID     uuid.UUID          `json:"bookingId"`
	ApartmentID   uuid.UUID          `json:"apartmentId"`
	Apartment     *apartmentResponse `json:"apartment,omitempty"`
	Booking       *bookingResponse   `json:"booking,omitempty"`
	Amount        int64              `json:"amount"`
	DueDate       time.Time          `json:"dueDate"`
	PaidDate      *time.Time         `json:"paidDate,omitempty"`
	Status        payment.Status     `json:"status"`
	PaymentMethod string             `json:"paymentMethod,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty"`
}

type apartmentResponse struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"number"`
}

type bookingResponse struct {
	ID         uuid.UUID `json:"id"`
	TenantName string    `json:"tenantName"`
}

func toResponse(p *payment.Payment) paymentResponse {
	resp := paymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		ApartmentID:   p.ApartmentID,
		Amount:        p.Amount,
		DueDate:       p.DueDate,
		PaidDate:      p.PaidDate,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	if p.Apartment != nil {
		resp.Apartment = &apartmentResponse{
			ID:     p.Apartment.ID,
			Number: p.Apartment.Number,
		}
	}

	if p.Booking != nil {
		resp.Booking = &bookingResponse{
			ID:         p.Booking.ID,
			TenantName: p.Booking.TenantName,
		}
	}

	return resp
}

func toResponseList(payments []*payment.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toResponse(p)
	}

	return resp
}

type receiptResponse struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
}

type reconcileResponse struct {
	Matched   int               `json:"matched"`
	Payments  []paymentResponse `json:"payments"`
	Unmatched []receiptResponse `json:"unmatched"`
}

func toReconcileResponse(res *payment.ReconcileResult) reconcileResponse {
	resp := reconcileResponse{
		Matched:   len(res.Matched),
		Payments:  make([]paymentResponse, 0, len(res.Matched)),
		Unmatched: make([]receiptResponse, 0, len(res.Unmatched)),
	}

	for _, p := range res.Matched {
		resp.Payments = append(resp.Payments, toResponse(p))
	}

	for _, r := range res.Unmatched {
		resp.Unmatched = append(resp.Unmatched, receiptResponse{
			Date:        r.Date,
			Description: r.Description,
			Amount:      r.Amount,
		})
	}

	return resp
}
