package tenant

import (
	"time"

	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apartment"
)

// Status represents the lifecycle state of a tenancy.
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

// Tenant occupies exactly one apartment. Creating a tenant flips the
// apartment to occupied; ending or deleting the tenancy frees it again.
type Tenant struct {
	ID          uuid.UUID
	ApartmentID uuid.UUID
	Apartment   *apartment.Apartment // Loaded via JOIN; nil when the apartment was deleted
	Name        string
	Email       string
	Phone       string
	StartDate   time.Time
	EndDate     *time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
