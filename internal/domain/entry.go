package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry as money in or money out.
type EntryKind string

const (
	EntryKindIncome  EntryKind = "income"
	EntryKindExpense EntryKind = "expense"
)

// Valid reports whether the kind is one of the two known values.
func (k EntryKind) Valid() bool {
	return k == EntryKindIncome || k == EntryKindExpense
}

// LedgerEntry represents a single income or expense record.
//
// CategoryName is a snapshot taken at creation time. It is deliberately not
// kept in sync when the referenced category is renamed later: a historical
// record stays as written unless the entry itself is edited.
type LedgerEntry struct {
	CreatedAt    time.Time
	OccurredAt   time.Time
	ID           string
	OwnerID      string
	Kind         EntryKind
	CategoryID   *string
	CategoryName *string
	Note         *string
	Amount       decimal.Decimal
}

// Validate validates the entry's required fields.
func (e *LedgerEntry) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !e.Kind.Valid() {
		return ErrInvalidKind
	}

	return nil
}

// EntryFilter narrows an owner's entry listing.
type EntryFilter struct {
	From       *time.Time
	To         *time.Time
	Kind       *EntryKind
	CategoryID *string
	OwnerID    string
	Page       int
	Limit      int
}
