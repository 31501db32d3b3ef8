package apartment

import (
	"time"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apartment"
)

type apartmentResponse struct {
	ID        uuid.UUID        `json:"id"`
	Number    string           `json:"number"`
	Floor     int              `json:"floor"`
	Bedrooms  int              `json:"bedrooms"`
	Bathrooms float64          `json:"bathrooms"`
	Rent      int64            `json:"rent"`
	Status    apartment.Status `json:"status"`
	Amenities []string         `json:"amenities"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
}

func toResponse(a *apartment.Apartment) apartmentResponse {
	amenities := a.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return apartmentResponse{
		ID:        a.ID,
		Number:    a.Number,
		Floor:     a.Floor,
		Bedrooms:  a.Bedrooms,
		Bathrooms: a.Bathrooms,
		Rent:      a.Rent,
		Status:    a.Status,
		Amenities: amenities,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toResponseList(apts []*apartment.Apartment) []apartmentResponse {
	resp := make([]apartmentResponse, len(apts))
	for i, a := range apts {
		resp[i] = toResponse(a)
	}

	return resp
}
