package maintenance

import (
	"time"

	"github.com/google/uuid"
)

// Priority ranks how urgently a request needs attention.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}

	return false
}

// Status tracks a request from report to completion.
type Status string

const (
	StatusReported   Status = "reported"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusReported, StatusScheduled, StatusInProgress, StatusCompleted:
		return true
	}

	return false
}

// Request is a maintenance report against an apartment.
type Request struct {
	ID            uuid.UUID
	ApartmentID   uuid.UUID
	Apartment     *ApartmentRef // Loaded via JOIN; omitted in per-apartment listings
	Title         string
	Description   string
	Priority      Priority
	Status        Status
	ReportedDate  time.Time
	ScheduledDate *time.Time
	CompletedDate *time.Time
	Cost          int64 // cents
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// ApartmentRef is the apartment projection requests are listed with.
type ApartmentRef struct {
	ID     uuid.UUID
	Number string
	Floor  int
}
