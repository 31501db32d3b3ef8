package tenant

import (
	"time"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apartment"
	"github.com/ptorrado/predio/internal/tenant"
)

type tenantResponse struct {
	ID          uuid.UUID          `json:"id"`
	ApartmentID uuid.UUID          `json:"apartmentId"`
	Apartment   *apartmentResponse `json:"apartment,omitempty"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     *time.Time         `json:"endDate,omitempty"`
	Status      tenant.Status      `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty"`
}

type apartmentResponse struct {
	ID        uuid.UUID        `json:"id"`
	Number    string           `json:"number"`
	Floor     int              `json:"floor"`
	Bedrooms  int              `json:"bedrooms"`
	Bathrooms float64          `json:"bathrooms"`
	Rent      int64            `json:"rent"`
	Status    apartment.Status `json:"status"`
}

func toResponse(t *tenant.Tenant) tenantResponse {
	resp := tenantResponse{
		ID:          t.ID,
		ApartmentID: t.ApartmentID,
		Name:        t.Name,
		Email:       t.Email,
		Phone:       t.Phone,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	if t.Apartment != nil {
		resp.Apartment = &apartmentResponse{
			ID:        t.Apartment.ID,
			Number:    t.Apartment.Number,
			Floor:     t.Apartment.Floor,
			Bedrooms:  t.Apartment.Bedrooms,
			Bathrooms: t.Apartment.Bathrooms,
			Rent:      t.Apartment.Rent,
			Status:    t.Apartment.Status,
		}
	}

	return resp
}

func toResponseList(tenants []*tenant.Tenant) []tenantResponse {
	resp := make([]tenantResponse, len(tenants))
	for i, t := range tenants {
		resp[i] = toResponse(t)
	}

	return resp
}
