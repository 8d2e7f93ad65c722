package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/infrastructure/metrics"
)

const pendingDigestLimit = 5

// ReminderUseCase handles reminder business logic, including the guarded
// pending to paid transition.
type ReminderUseCase struct {
	txManager    TransactionManager
	reminderRepo ReminderRepository
	outboxRepo   OutboxRepository
	sideEffects  SideEffects
	idGen        IDGenerator
	clock        Clock
	metrics      *metrics.Metrics
}

// NewReminderUseCase creates a new ReminderUseCase.
func NewReminderUseCase(
	txManager TransactionManager,
	reminderRepo ReminderRepository,
	outboxRepo OutboxRepository,
	sideEffects SideEffects,
	idGen IDGenerator,
	clock Clock,
	metrics *metrics.Metrics,
) *ReminderUseCase {
	return &ReminderUseCase{
		txManager:    txManager,
		reminderRepo: reminderRepo,
		outboxRepo:   outboxRepo,
		sideEffects:  sideEffects,
		idGen:        idGen,
		clock:        clock,
		metrics:      metrics,
	}
}

// CreateReminderInput represents input for creating a reminder.
type CreateReminderInput struct {
	DueAt   time.Time
	OwnerID string
	Title   string
	Amount  decimal.Decimal
}

// CreateReminder creates a pending reminder.
func (uc *ReminderUseCase) CreateReminder(ctx context.Context, input CreateReminderInput) (*domain.Reminder, error) {
	reminder := &domain.Reminder{
		ID:        uc.idGen.Generate(),
		OwnerID:   input.OwnerID,
		Title:     input.Title,
		Amount:    input.Amount,
		DueAt:     input.DueAt.UTC(),
		Status:    domain.ReminderStatusPending,
		CreatedAt: uc.clock.Now(),
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	if err := uc.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RemindersCreated.Inc()
	}

	return reminder, nil
}

// UpdateReminderInput represents a field patch for a reminder. Nil fields
// are left untouched.
type UpdateReminderInput struct {
	Title   *string
	Amount  *decimal.Decimal
	DueAt   *time.Time
	Status  *domain.ReminderStatus
	OwnerID string
	ID      string
}

// UpdateReminder patches a reminder. Setting status to paid routes through
// the guarded MarkPaid transition; any other status write is a plain field
// edit with no side effect and no reversal of a previously derived entry.
func (uc *ReminderUseCase) UpdateReminder(ctx context.Context, input UpdateReminderInput) (*domain.Reminder, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	reminder, err := uc.reminderRepo.GetByID(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	fieldsPatched := input.Title != nil || input.Amount != nil || input.DueAt != nil

	if input.Title != nil {
		reminder.Title = *input.Title
	}

	if input.Amount != nil {
		reminder.Amount = *input.Amount
	}

	if input.DueAt != nil {
		reminder.DueAt = input.DueAt.UTC()
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	// A status-only patch issues no field write.
	if fieldsPatched {
		if err := uc.reminderRepo.UpdateFields(ctx, reminder); err != nil {
			return nil, err
		}
	}

	if input.Status == nil {
		return reminder, nil
	}

	switch {
	case *input.Status == domain.ReminderStatusPaid && reminder.Status == domain.ReminderStatusPending:
		return uc.MarkPaid(ctx, input.OwnerID, input.ID)
	case *input.Status == domain.ReminderStatusPending && reminder.Status == domain.ReminderStatusPaid:
		if _, err := uc.reminderRepo.UpdateStatusIf(ctx, nil, input.OwnerID, input.ID,
			domain.ReminderStatusPaid, domain.ReminderStatusPending); err != nil {
			return nil, err
		}

		reminder.Status = domain.ReminderStatusPending
	}

	return reminder, nil
}

// MarkPaid transitions a pending reminder to paid and appends the derived
// expense entry. The transition is a conditional update: only the caller
// that flips pending to paid appends an entry, so re-invocation (sequential
// or concurrent) never creates a second one. An already paid reminder is
// returned unchanged.
func (uc *ReminderUseCase) MarkPaid(ctx context.Context, ownerID, id string) (*domain.Reminder, error) {
	reminder, err := uc.reminderRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if reminder.Status == domain.ReminderStatusPaid {
		return reminder, nil
	}

	now := uc.clock.Now()
	event := domain.ReminderPaidEvent{
		ReminderID: reminder.ID,
		OwnerID:    reminder.OwnerID,
		Amount:     reminder.Amount,
		Title:      reminder.Title,
		DueAt:      reminder.DueAt,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	flipped, err := uc.reminderRepo.UpdateStatusIf(ctx, tx, ownerID, id,
		domain.ReminderStatusPending, domain.ReminderStatusPaid)
	if err != nil {
		return nil, err
	}

	if !flipped {
		// Lost the race to a concurrent caller; return the current state
		// without appending anything.
		return uc.reminderRepo.GetByID(ctx, ownerID, id)
	}

	if err := uc.outboxRepo.Create(ctx, tx, uc.reminderPaidOutboxEvent(event, now)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	reminder.Status = domain.ReminderStatusPaid

	if uc.metrics != nil {
		uc.metrics.RemindersPaid.Inc()
	}

	if err := uc.sideEffects.ReminderPaid(ctx, event); err != nil {
		log.Warn().Err(err).
			Str("reminder_id", reminder.ID).
			Msg("derived ledger entry write failed, reminder stays paid")
		if uc.metrics != nil {
			uc.metrics.SideEffectFailures.WithLabelValues(domain.EventTypeReminderPaid).Inc()
		}
	}

	return reminder, nil
}

// ReminderListItem pairs a reminder with its projected display status.
type ReminderListItem struct {
	Reminder    *domain.Reminder
	StatusLabel domain.StatusLabel
}

// ListReminders lists an owner's reminders ordered by due date, each with a
// status label projected at the current instant.
func (uc *ReminderUseCase) ListReminders(ctx context.Context, ownerID string, page, limit int) ([]ReminderListItem, int64, error) {
	if page <= 0 {
		page = 1
	}

	if limit <= 0 {
		limit = 5
	}

	if limit > 100 {
		limit = 100
	}

	reminders, total, err := uc.reminderRepo.List(ctx, ownerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	now := uc.clock.Now()

	items := make([]ReminderListItem, 0, len(reminders))
	for _, r := range reminders {
		items = append(items, ReminderListItem{
			Reminder:    r,
			StatusLabel: domain.ProjectStatus(r, now),
		})
	}

	return items, total, nil
}

// PendingDigest holds the nearest-due pending reminders, capped at five.
type PendingDigest struct {
	Pending      []*domain.Reminder
	PendingCount int
}

// GetPendingDigest returns the owner's up-to-five nearest-due pending
// reminders.
func (uc *ReminderUseCase) GetPendingDigest(ctx context.Context, ownerID string) (*PendingDigest, error) {
	pending, err := uc.reminderRepo.ListPendingDue(ctx, ownerID, pendingDigestLimit)
	if err != nil {
		return nil, err
	}

	return &PendingDigest{
		Pending:      pending,
		PendingCount: len(pending),
	}, nil
}

func (uc *ReminderUseCase) reminderPaidOutboxEvent(event domain.ReminderPaidEvent, now time.Time) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   event.ReminderID,
		AggregateType: domain.AggregateTypeReminder,
		EventType:     domain.EventTypeReminderPaid,
		Payload: map[string]any{
			"reminder_id": event.ReminderID,
			"owner_id":    event.OwnerID,
			"amount":      event.Amount.String(),
			"title":       event.Title,
			"due_at":      event.DueAt.Format(time.RFC3339),
		},
		CreatedAt: now,
	}
}
