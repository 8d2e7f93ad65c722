package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/infrastructure/metrics"
)

const (
	suggestionsLimit    = 20
	suggestionsCacheTTL = 5 * time.Minute
)

// EntryUseCase handles ledger entry business logic.
type EntryUseCase struct {
	txManager    TransactionManager
	entryRepo    EntryRepository
	categoryRepo CategoryRepository
	outboxRepo   OutboxRepository
	sideEffects  SideEffects
	cache        Cache
	idGen        IDGenerator
	clock        Clock
	metrics      *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	sideEffects SideEffects,
	cache Cache,
	idGen IDGenerator,
	clock Clock,
	metrics *metrics.Metrics,
) *EntryUseCase {
	return &EntryUseCase{
		txManager:    txManager,
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		sideEffects:  sideEffects,
		cache:        cache,
		idGen:        idGen,
		clock:        clock,
		metrics:      metrics,
	}
}

// CreateEntryInput represents input for creating a ledger entry.
type CreateEntryInput struct {
	OccurredAt   *time.Time
	CategoryID   *string
	CategoryName *string
	Note         *string
	OwnerID      string
	Kind         domain.EntryKind
	Amount       decimal.Decimal
}

// CreateEntry creates a ledger entry. When the entry is an expense filed
// under the bill category, a pending reminder is spawned as a second,
// independent write: its failure is logged and swallowed, the entry creation
// still succeeds.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.LedgerEntry, error) {
	now := uc.clock.Now()

	occurredAt := now
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	entry := &domain.LedgerEntry{
		ID:           uc.idGen.Generate(),
		OwnerID:      input.OwnerID,
		Amount:       input.Amount,
		Kind:         input.Kind,
		CategoryID:   input.CategoryID,
		CategoryName: uc.resolveCategoryName(ctx, input.OwnerID, input.CategoryID, input.CategoryName),
		Note:         input.Note,
		OccurredAt:   occurredAt.UTC().Truncate(time.Second),
		CreatedAt:    now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	billDetected := entry.Kind == domain.EntryKindExpense &&
		entry.CategoryName != nil &&
		domain.IsBillCategory(*entry.CategoryName)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.entryRepo.CreateTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.outboxRepo.Create(ctx, tx, uc.entryCreatedOutboxEvent(entry, now)); err != nil {
		return nil, err
	}

	var event domain.BillDetectedEvent
	if billDetected {
		title := domain.DefaultReminderTitle
		if entry.Note != nil && *entry.Note != "" {
			title = *entry.Note
		}

		event = domain.BillDetectedEvent{
			EntryID: entry.ID,
			OwnerID: entry.OwnerID,
			Amount:  entry.Amount,
			Title:   title,
			DueAt:   entry.OccurredAt,
		}

		if err := uc.outboxRepo.Create(ctx, tx, uc.billDetectedOutboxEvent(event, now)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateSuggestions(ctx, input.OwnerID)

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.WithLabelValues(string(entry.Kind)).Inc()
		uc.metrics.EntryAmount.WithLabelValues(string(entry.Kind)).Observe(entry.Amount.InexactFloat64())
		if billDetected {
			uc.metrics.BillsDetected.Inc()
		}
	}

	if billDetected {
		if err := uc.sideEffects.BillDetected(ctx, event); err != nil {
			log.Warn().Err(err).
				Str("entry_id", entry.ID).
				Msg("bill reminder creation failed, entry kept")
			if uc.metrics != nil {
				uc.metrics.SideEffectFailures.WithLabelValues(domain.EventTypeBillDetected).Inc()
			}
		}
	}

	return entry, nil
}

// UpdateEntryInput represents a field patch for a ledger entry. Nil fields
// are left untouched.
type UpdateEntryInput struct {
	Amount       *decimal.Decimal
	Kind         *domain.EntryKind
	CategoryID   *string
	CategoryName *string
	Note         *string
	OccurredAt   *time.Time
	OwnerID      string
	ID           string
}

// UpdateEntry patches a ledger entry. Edits never cascade to reminders and
// never re-trigger bill detection.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*domain.LedgerEntry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		entry.Amount = *input.Amount
	}

	if input.Kind != nil {
		entry.Kind = *input.Kind
	}

	if input.CategoryID != nil {
		entry.CategoryID = input.CategoryID
	}

	if input.CategoryName != nil {
		entry.CategoryName = input.CategoryName
	}

	if input.Note != nil {
		entry.Note = input.Note
	}

	if input.OccurredAt != nil {
		entry.OccurredAt = input.OccurredAt.UTC().Truncate(time.Second)
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	uc.invalidateSuggestions(ctx, input.OwnerID)

	return entry, nil
}

// DeleteEntry deletes an owner's ledger entry.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, ownerID, id string) error {
	if err := uc.entryRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	uc.invalidateSuggestions(ctx, ownerID)

	if uc.metrics != nil {
		uc.metrics.EntriesDeleted.Inc()
	}

	return nil
}

// GetEntry retrieves an owner's ledger entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, ownerID, id string) (*domain.LedgerEntry, error) {
	return uc.entryRepo.GetByID(ctx, ownerID, id)
}

// ListEntries lists an owner's entries, newest first, with optional kind,
// category and date filters.
func (uc *EntryUseCase) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}

	if filter.Limit <= 0 {
		filter.Limit = 15
	}

	if filter.Limit > 100 {
		filter.Limit = 100
	}

	return uc.entryRepo.List(ctx, filter)
}

// AmountSuggestions returns the owner's distinct historical amounts,
// descending, capped at twenty.
func (uc *EntryUseCase) AmountSuggestions(ctx context.Context, ownerID string) ([]decimal.Decimal, error) {
	key := suggestionsCacheKey(ownerID)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, key); err == nil {
			var amounts []decimal.Decimal
			if err := json.Unmarshal(cached, &amounts); err == nil {
				if uc.metrics != nil {
					uc.metrics.CacheHits.WithLabelValues("amount_suggestions").Inc()
				}
				return amounts, nil
			}
		}
		if uc.metrics != nil {
			uc.metrics.CacheMisses.WithLabelValues("amount_suggestions").Inc()
		}
	}

	amounts, err := uc.entryRepo.DistinctAmounts(ctx, ownerID, suggestionsLimit)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(amounts); err == nil {
			if err := uc.cache.Set(ctx, key, encoded, suggestionsCacheTTL); err != nil {
				log.Debug().Err(err).Msg("amount suggestions cache write failed")
			}
		}
	}

	return amounts, nil
}

// resolveCategoryName resolves a category reference to its current name for
// the snapshot. Resolution failure of any sort falls back to the provided
// name unchanged; it is never an error.
func (uc *EntryUseCase) resolveCategoryName(ctx context.Context, ownerID string, categoryID, fallback *string) *string {
	if categoryID == nil {
		return fallback
	}

	category, err := uc.categoryRepo.GetByID(ctx, ownerID, *categoryID)
	if err != nil {
		return fallback
	}

	name := category.Name

	return &name
}

func (uc *EntryUseCase) entryCreatedOutboxEvent(entry *domain.LedgerEntry, now time.Time) *domain.OutboxEvent {
	payload := map[string]any{
		"entry_id":    entry.ID,
		"owner_id":    entry.OwnerID,
		"amount":      entry.Amount.String(),
		"kind":        string(entry.Kind),
		"occurred_at": entry.OccurredAt.Format(time.RFC3339),
	}
	if entry.CategoryName != nil {
		payload["category_name"] = *entry.CategoryName
	}

	return &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     domain.EventTypeEntryCreated,
		Payload:       payload,
		CreatedAt:     now,
	}
}

func (uc *EntryUseCase) billDetectedOutboxEvent(event domain.BillDetectedEvent, now time.Time) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   event.EntryID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     domain.EventTypeBillDetected,
		Payload: map[string]any{
			"entry_id": event.EntryID,
			"owner_id": event.OwnerID,
			"amount":   event.Amount.String(),
			"title":    event.Title,
			"due_at":   event.DueAt.Format(time.RFC3339),
		},
		CreatedAt: now,
	}
}

func (uc *EntryUseCase) invalidateSuggestions(ctx context.Context, ownerID string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, suggestionsCacheKey(ownerID)); err != nil {
		log.Debug().Err(err).Msg("amount suggestions cache invalidation failed")
	}
}

func suggestionsCacheKey(ownerID string) string {
	return "amounts:" + ownerID
}
