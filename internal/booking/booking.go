package booking

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a booking.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusEnded   Status = "ended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusEnded:
		return true
	}

	return false
}

// Booking reserves an apartment for a prospective tenant. The contact
// fields are a snapshot taken at booking time, not a reference to a Tenant
// record: later tenant edits do not propagate here.
type Booking struct {
	ID          uuid.UUID
	ApartmentID uuid.UUID
	Apartment   *ApartmentRef // Loaded via JOIN
	TenantName  string
	TenantEmail string
	TenantPhone string
	StartDate   time.Time
	EndDate     *time.Time
	MonthlyRent int64 // cents
	Deposit     int64 // cents
	Status      Status
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ApartmentRef is the apartment projection bookings are listed with.
type ApartmentRef struct {
	ID       uuid.UUID
	Number   string
	Floor    int
	Bedrooms int
}
