package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// MockEntryRepository is an in-memory implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.LedgerEntry

	CreateFunc          func(ctx context.Context, entry *domain.LedgerEntry) error
	GetByIDFunc         func(ctx context.Context, ownerID, id string) (*domain.LedgerEntry, error)
	UpdateFunc          func(ctx context.Context, entry *domain.LedgerEntry) error
	DeleteFunc          func(ctx context.Context, ownerID, id string) error
	ListFunc            func(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, int64, error)
	DistinctAmountsFunc func(ctx context.Context, ownerID string, limit int) ([]decimal.Decimal, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.LedgerEntry),
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *MockEntryRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	return m.Create(ctx, entry)
}

func (m *MockEntryRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.LedgerEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	if !ok || entry.OwnerID != ownerID {
		return nil, domain.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (m *MockEntryRepository) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.entries[entry.ID]
	if !ok || existing.OwnerID != entry.OwnerID {
		return domain.ErrEntryNotFound
	}
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *MockEntryRepository) Delete(ctx context.Context, ownerID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok || entry.OwnerID != ownerID {
		return domain.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MockEntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, entry := range m.entries {
		if entry.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Kind != nil && entry.Kind != *filter.Kind {
			continue
		}
		copied := *entry
		entries = append(entries, &copied)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	return entries, int64(len(entries)), nil
}

func (m *MockEntryRepository) DistinctAmounts(ctx context.Context, ownerID string, limit int) ([]decimal.Decimal, error) {
	if m.DistinctAmountsFunc != nil {
		return m.DistinctAmountsFunc(ctx, ownerID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var amounts []decimal.Decimal
	for _, entry := range m.entries {
		if entry.OwnerID != ownerID || seen[entry.Amount.String()] {
			continue
		}
		seen[entry.Amount.String()] = true
		amounts = append(amounts, entry.Amount)
	}
	sort.Slice(amounts, func(i, j int) bool {
		return amounts[i].GreaterThan(amounts[j])
	})
	if len(amounts) > limit {
		amounts = amounts[:limit]
	}
	return amounts, nil
}

// All returns every stored entry, for test assertions.
func (m *MockEntryRepository) All() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.LedgerEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		copied := *entry
		entries = append(entries, &copied)
	}
	return entries
}

// MockReminderRepository is an in-memory implementation of ReminderRepository.
type MockReminderRepository struct {
	mu        sync.RWMutex
	reminders map[string]*domain.Reminder

	CreateFunc         func(ctx context.Context, reminder *domain.Reminder) error
	GetByIDFunc        func(ctx context.Context, ownerID, id string) (*domain.Reminder, error)
	UpdateFieldsFunc   func(ctx context.Context, reminder *domain.Reminder) error
	UpdateStatusIfFunc func(ctx context.Context, tx usecase.Transaction, ownerID, id string, expected, next domain.ReminderStatus) (bool, error)
	ListFunc           func(ctx context.Context, ownerID string, page, limit int) ([]*domain.Reminder, int64, error)
	ListPendingDueFunc func(ctx context.Context, ownerID string, limit int) ([]*domain.Reminder, error)
}

func NewMockReminderRepository() *MockReminderRepository {
	return &MockReminderRepository{
		reminders: make(map[string]*domain.Reminder),
	}
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reminder)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *reminder
	m.reminders[reminder.ID] = &copied
	return nil
}

func (m *MockReminderRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Reminder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	reminder, ok := m.reminders[id]
	if !ok || reminder.OwnerID != ownerID {
		return nil, domain.ErrReminderNotFound
	}
	copied := *reminder
	return &copied, nil
}

func (m *MockReminderRepository) UpdateFields(ctx context.Context, reminder *domain.Reminder) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, reminder)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.reminders[reminder.ID]
	if !ok || existing.OwnerID != reminder.OwnerID {
		return domain.ErrReminderNotFound
	}
	existing.Title = reminder.Title
	existing.Amount = reminder.Amount
	existing.DueAt = reminder.DueAt
	return nil
}

func (m *MockReminderRepository) UpdateStatusIf(ctx context.Context, tx usecase.Transaction, ownerID, id string, expected, next domain.ReminderStatus) (bool, error) {
	if m.UpdateStatusIfFunc != nil {
		return m.UpdateStatusIfFunc(ctx, tx, ownerID, id, expected, next)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	reminder, ok := m.reminders[id]
	if !ok || reminder.OwnerID != ownerID || reminder.Status != expected {
		return false, nil
	}
	reminder.Status = next
	return true, nil
}

func (m *MockReminderRepository) List(ctx context.Context, ownerID string, page, limit int) ([]*domain.Reminder, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, page, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reminders []*domain.Reminder
	for _, reminder := range m.reminders {
		if reminder.OwnerID != ownerID {
			continue
		}
		copied := *reminder
		reminders = append(reminders, &copied)
	}
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].DueAt.Before(reminders[j].DueAt)
	})
	return reminders, int64(len(reminders)), nil
}

func (m *MockReminderRepository) ListPendingDue(ctx context.Context, ownerID string, limit int) ([]*domain.Reminder, error) {
	if m.ListPendingDueFunc != nil {
		return m.ListPendingDueFunc(ctx, ownerID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var pending []*domain.Reminder
	for _, reminder := range m.reminders {
		if reminder.OwnerID != ownerID || reminder.Status != domain.ReminderStatusPending {
			continue
		}
		copied := *reminder
		pending = append(pending, &copied)
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].DueAt.Before(pending[j].DueAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

// All returns every stored reminder, for test assertions.
func (m *MockReminderRepository) All() []*domain.Reminder {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reminders := make([]*domain.Reminder, 0, len(m.reminders))
	for _, reminder := range m.reminders {
		copied := *reminder
		reminders = append(reminders, &copied)
	}
	return reminders
}

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category

	GetByIDFunc func(ctx context.Context, ownerID, id string) (*domain.Category, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]*domain.Category),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *category
	m.categories[category.ID] = &copied
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	category, ok := m.categories[id]
	if !ok || category.OwnerID != ownerID {
		return nil, domain.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.categories[category.ID]
	if !ok || existing.OwnerID != category.OwnerID {
		return domain.ErrCategoryNotFound
	}
	copied := *category
	m.categories[category.ID] = &copied
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.categories[id]
	if !ok || category.OwnerID != ownerID {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *MockCategoryRepository) List(ctx context.Context, ownerID string, kind *domain.EntryKind) ([]*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []*domain.Category
	for _, category := range m.categories {
		if category.OwnerID != ownerID {
			continue
		}
		if kind != nil && category.Kind != *kind {
			continue
		}
		copied := *category
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// MockReportRepository is a stub implementation of ReportRepository.
type MockReportRepository struct {
	SumByKindFunc                 func(ctx context.Context, ownerID string, from, to *time.Time) (map[domain.EntryKind]decimal.Decimal, error)
	SumExpenseByCategoryFunc      func(ctx context.Context, ownerID string, from, to *time.Time) ([]domain.CategoryTotal, error)
	SumExpenseByCategoryRangeFunc func(ctx context.Context, ownerID string, start, end time.Time) ([]domain.CategoryTotal, error)
	SumExpenseByMonthFunc         func(ctx context.Context, ownerID string, start, end time.Time) (map[int]decimal.Decimal, error)
}

func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{}
}

func (m *MockReportRepository) SumByKind(ctx context.Context, ownerID string, from, to *time.Time) (map[domain.EntryKind]decimal.Decimal, error) {
	if m.SumByKindFunc != nil {
		return m.SumByKindFunc(ctx, ownerID, from, to)
	}
	return map[domain.EntryKind]decimal.Decimal{}, nil
}

func (m *MockReportRepository) SumExpenseByCategory(ctx context.Context, ownerID string, from, to *time.Time) ([]domain.CategoryTotal, error) {
	if m.SumExpenseByCategoryFunc != nil {
		return m.SumExpenseByCategoryFunc(ctx, ownerID, from, to)
	}
	return nil, nil
}

func (m *MockReportRepository) SumExpenseByCategoryRange(ctx context.Context, ownerID string, start, end time.Time) ([]domain.CategoryTotal, error) {
	if m.SumExpenseByCategoryRangeFunc != nil {
		return m.SumExpenseByCategoryRangeFunc(ctx, ownerID, start, end)
	}
	return nil, nil
}

func (m *MockReportRepository) SumExpenseByMonth(ctx context.Context, ownerID string, start, end time.Time) (map[int]decimal.Decimal, error) {
	if m.SumExpenseByMonthFunc != nil {
		return m.SumExpenseByMonthFunc(ctx, ownerID, start, end)
	}
	return map[int]decimal.Decimal{}, nil
}

// MockOutboxRepository is an in-memory implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *event
	m.events = append(m.events, &copied)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var unpublished []*domain.OutboxEvent
	for _, event := range m.events {
		if event.Published {
			continue
		}
		copied := *event
		unpublished = append(unpublished, &copied)
		if len(unpublished) == limit {
			break
		}
	}
	return unpublished, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, event := range m.events {
		if event.ID == id {
			event.Published = true
			event.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, event := range m.events {
		if event.Published && event.PublishedAt != nil && event.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, event)
	}
	m.events = kept
	return nil
}

// Events returns every stored outbox event, for test assertions.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]*domain.OutboxEvent, 0, len(m.events))
	for _, event := range m.events {
		copied := *event
		events = append(events, &copied)
	}
	return events
}

// MockSideEffects records consumed events.
type MockSideEffects struct {
	mu sync.Mutex

	BillDetectedEvents []domain.BillDetectedEvent
	ReminderPaidEvents []domain.ReminderPaidEvent

	BillDetectedFunc func(ctx context.Context, event domain.BillDetectedEvent) error
	ReminderPaidFunc func(ctx context.Context, event domain.ReminderPaidEvent) error
}

func NewMockSideEffects() *MockSideEffects {
	return &MockSideEffects{}
}

func (m *MockSideEffects) BillDetected(ctx context.Context, event domain.BillDetectedEvent) error {
	m.mu.Lock()
	m.BillDetectedEvents = append(m.BillDetectedEvents, event)
	m.mu.Unlock()
	if m.BillDetectedFunc != nil {
		return m.BillDetectedFunc(ctx, event)
	}
	return nil
}

func (m *MockSideEffects) ReminderPaid(ctx context.Context, event domain.ReminderPaidEvent) error {
	m.mu.Lock()
	m.ReminderPaidEvents = append(m.ReminderPaidEvents, event)
	m.mu.Unlock()
	if m.ReminderPaidFunc != nil {
		return m.ReminderPaidFunc(ctx, event)
	}
	return nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%d", m.next)
}

// MockClock returns a fixed instant.
type MockClock struct {
	Time time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{Time: t}
}

func (m *MockClock) Now() time.Time {
	return m.Time
}

// MockCache is an in-memory implementation of Cache. TTLs are ignored.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		values: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("cache miss: %s", key)
	}
	return value, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
