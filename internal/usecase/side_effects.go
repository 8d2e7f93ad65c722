package usecase

import (
	"context"
	"time"

	"github.com/iho/finbook/internal/domain"
)

// SideEffectHandler performs the derived write behind each cross-entity
// event. Each handler is a single independent write with no retry; callers
// decide what to do with a failure (the use cases log and swallow it).
type SideEffectHandler struct {
	entryRepo    EntryRepository
	reminderRepo ReminderRepository
	idGen        IDGenerator
	clock        Clock
}

// NewSideEffectHandler creates a new SideEffectHandler.
func NewSideEffectHandler(
	entryRepo EntryRepository,
	reminderRepo ReminderRepository,
	idGen IDGenerator,
	clock Clock,
) *SideEffectHandler {
	return &SideEffectHandler{
		entryRepo:    entryRepo,
		reminderRepo: reminderRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// BillDetected spawns a pending reminder for a detected bill expense, due at
// the instant the expense occurred.
func (h *SideEffectHandler) BillDetected(ctx context.Context, event domain.BillDetectedEvent) error {
	reminder := &domain.Reminder{
		ID:        h.idGen.Generate(),
		OwnerID:   event.OwnerID,
		Title:     event.Title,
		Amount:    event.Amount,
		DueAt:     event.DueAt,
		Status:    domain.ReminderStatusPending,
		CreatedAt: h.clock.Now(),
	}

	return h.reminderRepo.Create(ctx, reminder)
}

// ReminderPaid appends the expense entry derived from a paid reminder. The
// entry carries the bill category snapshot, the reminder's title as note and
// the due date truncated to whole minutes as its occurrence time.
func (h *SideEffectHandler) ReminderPaid(ctx context.Context, event domain.ReminderPaidEvent) error {
	categoryName := domain.BillCategoryName
	note := event.Title

	entry := &domain.LedgerEntry{
		ID:           h.idGen.Generate(),
		OwnerID:      event.OwnerID,
		Amount:       event.Amount,
		Kind:         domain.EntryKindExpense,
		CategoryName: &categoryName,
		Note:         &note,
		OccurredAt:   event.DueAt.UTC().Truncate(time.Minute),
		CreatedAt:    h.clock.Now(),
	}

	return h.entryRepo.Create(ctx, entry)
}
