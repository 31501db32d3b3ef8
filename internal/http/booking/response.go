package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/booking"
)

type bookingResponse struct {
	ID          uuid.UUID          `json:"id"`
	ApartmentID uuid.UUID          `json:"apartmentId"`
	Apartment   *apartmentResponse `json:"apartment,omitempty"`
	TenantName  string             `json:"tenantName"`
	TenantEmail string             `json:"tenantEmail,omitempty"`
	TenantPhone string             `json:"tenantPhone,omitempty"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     *time.Time         `json:"endDate,omitempty"`
	MonthlyRent int64              `json:"monthlyRent"`
	Deposit     int64              `json:"deposit"`
	Status      booking.Status     `json:"status"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty"`
}

type apartmentResponse struct {
	ID       uuid.UUID `json:"id"`
	Number   string    `json:"number"`
	Floor    int       `json:"floor"`
	Bedrooms int       `json:"bedrooms"`
}

func toResponse(b *booking.Booking) bookingResponse {
	resp := bookingResponse{
		ID:          b.ID,
		ApartmentID: b.ApartmentID,
		TenantName:  b.TenantName,
		TenantEmail: b.TenantEmail,
		TenantPhone: b.TenantPhone,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		MonthlyRent: b.MonthlyRent,
		Deposit:     b.Deposit,
		Status:      b.Status,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if b.Apartment != nil {
		resp.Apartment = &apartmentResponse{
			ID:       b.Apartment.ID,
			Number:   b.Apartment.Number,
			Floor:    b.Apartment.Floor,
			Bedrooms: b.Apartment.Bedrooms,
		}
	}

	return resp
}

func toResponseList(bookings []*booking.Booking) []bookingResponse {
	resp := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toResponse(b)
	}

	return resp
}
