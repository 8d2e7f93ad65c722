package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeEntryCreated = "entry.created"
	EventTypeBillDetected = "bill.detected"
	EventTypeReminderPaid = "reminder.paid"
)

// Aggregate types
const (
	AggregateTypeEntry    = "entry"
	AggregateTypeReminder = "reminder"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// BillDetectedEvent is raised when an expense entry lands in the bill
// category. Its consumer creates the pending reminder.
type BillDetectedEvent struct {
	DueAt   time.Time
	EntryID string
	OwnerID string
	Title   string
	Amount  decimal.Decimal
}

// ReminderPaidEvent is raised when a reminder transitions pending to paid.
// Its consumer appends the derived expense entry.
type ReminderPaidEvent struct {
	DueAt      time.Time
	ReminderID string
	OwnerID    string
	Title      string
	Amount     decimal.Decimal
}
