package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
)

// EntryRepository defines data access for ledger entries. Every operation is
// owner-scoped; an id belonging to another owner behaves as not found.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	CreateTx(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.LedgerEntry, error)
	Update(ctx context.Context, entry *domain.LedgerEntry) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, int64, error)
	DistinctAmounts(ctx context.Context, ownerID string, limit int) ([]decimal.Decimal, error)
}

// ReminderRepository defines data access for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Reminder, error)
	// UpdateFields persists title, amount and due date. Status is out of its
	// reach on purpose: status moves only through UpdateStatusIf.
	UpdateFields(ctx context.Context, reminder *domain.Reminder) error
	// UpdateStatusIf flips the status only when the persisted value still
	// equals expected. Returns false when no row matched.
	UpdateStatusIf(ctx context.Context, tx Transaction, ownerID, id string, expected, next domain.ReminderStatus) (bool, error)
	List(ctx context.Context, ownerID string, page, limit int) ([]*domain.Reminder, int64, error)
	ListPendingDue(ctx context.Context, ownerID string, limit int) ([]*domain.Reminder, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, kind *domain.EntryKind) ([]*domain.Category, error)
}

// ReportRepository defines owner-scoped aggregation queries over entries.
type ReportRepository interface {
	// SumByKind sums amounts per kind; bounds are inclusive and either may
	// be nil.
	SumByKind(ctx context.Context, ownerID string, from, to *time.Time) (map[domain.EntryKind]decimal.Decimal, error)
	// SumExpenseByCategory groups expense amounts by category snapshot
	// within inclusive bounds, either of which may be nil.
	SumExpenseByCategory(ctx context.Context, ownerID string, from, to *time.Time) ([]domain.CategoryTotal, error)
	// SumExpenseByCategoryRange is the half-open [start, end) variant used
	// for calendar windows.
	SumExpenseByCategoryRange(ctx context.Context, ownerID string, start, end time.Time) ([]domain.CategoryTotal, error)
	// SumExpenseByMonth groups expense amounts inside [start, end) by the
	// calendar month of occurred_at, as stored.
	SumExpenseByMonth(ctx context.Context, ownerID string, start, end time.Time) (map[int]decimal.Decimal, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// SideEffects consumes the two cross-entity domain events. Both handlers
// perform a second, independent write: failures are reported to the caller,
// which logs and swallows them without failing the primary operation.
type SideEffects interface {
	BillDetected(ctx context.Context, event domain.BillDetectedEvent) error
	ReminderPaid(ctx context.Context, event domain.ReminderPaidEvent) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current instant. Injected so that time-derived values
// (status labels, default periods) are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
