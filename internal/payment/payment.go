package payment

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the settlement state of a payment.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}

	return false
}

// Payment is one rent installment owed under a booking.
type Payment struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	ApartmentID   uuid.UUID
	Apartment     *ApartmentRef // Loaded via JOIN
	Booking       *BookingRef   // Loaded via JOIN
	Amount        int64         // cents
	DueDate       time.Time
	PaidDate      *time.Time
	Status        Status
	PaymentMethod string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// ApartmentRef is the apartment projection payments are listed with.
type ApartmentRef struct {
	ID     uuid.UUID
	Number string
}

// BookingRef is the booking projection payments are listed with.
type BookingRef struct {
	ID         uuid.UUID
	TenantName string
}

// Receipt is one credit line parsed from an uploaded bank statement.
type Receipt struct {
	Date        time.Time
	Description string
	Amount      int64 // cents
}

// IsOverdue reports whether p is pending past its due date. Overdue is a
// read-time computation, never swept into the store.
func IsOverdue(p *Payment, now time.Time) bool {
	return p.Status == StatusPending && p.DueDate.Before(now)
}
