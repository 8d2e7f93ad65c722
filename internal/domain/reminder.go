package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReminderStatus is the persisted payment state of a reminder.
type ReminderStatus string

const (
	ReminderStatusPending ReminderStatus = "pending"
	ReminderStatusPaid    ReminderStatus = "paid"
)

// Valid reports whether the status is one of the two persisted values.
func (s ReminderStatus) Valid() bool {
	return s == ReminderStatusPending || s == ReminderStatusPaid
}

// StatusLabel is the read-time classification of a reminder. It is derived
// from the persisted status, the due date and the current instant, and is
// never stored.
type StatusLabel string

const (
	StatusLabelPending  StatusLabel = "pending"
	StatusLabelUpcoming StatusLabel = "upcoming"
	StatusLabelOverdue  StatusLabel = "overdue"
	StatusLabelPaid     StatusLabel = "paid"
)

// UpcomingHorizon is how far ahead of the due date a pending reminder is
// labelled "upcoming".
const UpcomingHorizon = 3 * 24 * time.Hour

// Reminder represents an unpaid-obligation record with a due date.
type Reminder struct {
	CreatedAt time.Time
	DueAt     time.Time
	ID        string
	OwnerID   string
	Title     string
	Status    ReminderStatus
	Amount    decimal.Decimal
}

// Validate validates the reminder's required fields.
func (r *Reminder) Validate() error {
	if r.Title == "" {
		return ErrTitleRequired
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if r.DueAt.IsZero() {
		return ErrDueDateRequired
	}

	return nil
}

// ProjectStatus derives the display status of a reminder at the given
// instant. Paid wins regardless of the due date.
func ProjectStatus(r *Reminder, now time.Time) StatusLabel {
	if r.Status == ReminderStatusPaid {
		return StatusLabelPaid
	}

	if r.DueAt.Before(now) {
		return StatusLabelOverdue
	}

	if !r.DueAt.After(now.Add(UpcomingHorizon)) {
		return StatusLabelUpcoming
	}

	return StatusLabelPending
}
