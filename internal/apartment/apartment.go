package apartment

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the occupancy state of an apartment.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return true
	}

	return false
}

// Apartment is the root entity of the back office. Tenants, bookings,
// payments and maintenance requests all reference it by id.
type Apartment struct {
	ID        uuid.UUID
	Number    string
	Floor     int
	Bedrooms  int
	Bathrooms float64
	Rent      int64 // Monthly rent in cents
	Status    Status
	Amenities []string
	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
