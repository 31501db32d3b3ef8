package maintenance

import (
	"time"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/maintenance"
)

type requestResponse struct {
	ID            uuid.UUID            `json:"id"`
	ApartmentID   uuid.UUID            `json:"apartmentId"`
	Apartment     *apartmentResponse   `json:"apartment,omitempty"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Priority      maintenance.Priority `json:"priority"`
	Status        maintenance.Status   `json:"status"`
	ReportedDate  time.Time            `json:"reportedDate"`
	ScheduledDate *time.Time           `json:"scheduledDate,omitempty"`
	CompletedDate *time.Time           `json:"completedDate,omitempty"`
	Cost          int64                `json:"cost"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     *time.Time           `json:"updatedAt,omitempty"`
}

type apartmentResponse struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"number"`
	Floor  int       `json:"floor"`
}

func toResponse(m *maintenance.Request) requestResponse {
	resp := requestResponse{
		ID:            m.ID,
		ApartmentID:   m.ApartmentID,
		Title:         m.Title,
		Description:   m.Description,
		Priority:      m.Priority,
		Status:        m.Status,
		ReportedDate:  m.ReportedDate,
		ScheduledDate: m.ScheduledDate,
		CompletedDate: m.CompletedDate,
		Cost:          m.Cost,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.Apartment != nil {
		resp.Apartment = &apartmentResponse{
			ID:     m.Apartment.ID,
			Number: m.Apartment.Number,
			Floor:  m.Apartment.Floor,
		}
	}

	return resp
}

func toResponseList(requests []*maintenance.Request) []requestResponse {
	resp := make([]requestResponse, len(requests))
	for i, m := range requests {
		resp[i] = toResponse(m)
	}

	return resp
}
