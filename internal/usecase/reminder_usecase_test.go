package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
	"github.com/iho/finbook/internal/usecase/mocks"
)

func newReminderFixture() (*usecase.ReminderUseCase, *mocks.MockReminderRepository, *mocks.MockEntryRepository, *mocks.MockOutboxRepository, *mocks.MockClock) {
	reminderRepo := mocks.NewMockReminderRepository()
	entryRepo := mocks.NewMockEntryRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	idGen := mocks.NewMockIDGenerator()
	clock := mocks.NewMockClock(time.Date(2025, time.November, 20, 9, 0, 0, 0, time.UTC))

	sideEffects := usecase.NewSideEffectHandler(entryRepo, reminderRepo, idGen, clock)

	uc := usecase.NewReminderUseCase(
		mocks.NewMockTransactionManager(),
		reminderRepo,
		outboxRepo,
		sideEffects,
		idGen,
		clock,
		nil,
	)

	return uc, reminderRepo, entryRepo, outboxRepo, clock
}

func TestReminderUseCase_CreateReminder(t *testing.T) {
	uc, _, _, _, _ := newReminderFixture()

	reminder, err := uc.CreateReminder(context.Background(), usecase.CreateReminderInput{
		OwnerID: "owner-1",
		Title:   "Nước",
		Amount:  decimal.NewFromInt(500000),
		DueAt:   time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reminder.Status != domain.ReminderStatusPending {
		t.Errorf("expected pending, got %s", reminder.Status)
	}

	_, err = uc.CreateReminder(context.Background(), usecase.CreateReminderInput{
		OwnerID: "owner-1",
		Amount:  decimal.NewFromInt(500000),
		DueAt:   time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != domain.ErrTitleRequired {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}

func TestReminderUseCase_MarkPaid_DerivedEntry(t *testing.T) {
	uc, _, entryRepo, outboxRepo, _ := newReminderFixture()

	reminder, err := uc.CreateReminder(context.Background(), usecase.CreateReminderInput{
		OwnerID: "owner-1",
		Title:   "Nước",
		Amount:  decimal.NewFromInt(500000),
		DueAt:   time.Date(2025, time.November, 1, 0, 0, 30, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paid, err := uc.MarkPaid(context.Background(), "owner-1", reminder.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid.Status != domain.ReminderStatusPaid {
		t.Errorf("expected paid, got %s", paid.Status)
	}

	entries := entryRepo.All()
	if len(entries) != 1 {
		t.Fatalf("expected exactly one derived entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Kind != domain.EntryKindExpense {
		t.Errorf("expected expense, got %s", entry.Kind)
	}
	if !entry.Amount.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("expected amount 500000, got %s", entry.Amount)
	}
	if entry.CategoryName == nil || *entry.CategoryName != domain.BillCategoryName {
		t.Errorf("expected bill category snapshot, got %v", entry.CategoryName)
	}
	if entry.Note == nil || *entry.Note != "Nước" {
		t.Errorf("expected reminder title as note, got %v", entry.Note)
	}

	// Seconds are dropped from the due date.
	want := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	if !entry.OccurredAt.Equal(want) {
		t.Errorf("expected occurred at %v, got %v", want, entry.OccurredAt)
	}

	outbox := outboxRepo.Events()
	if len(outbox) != 1 {
		t.Fatalf("expected 1 outbox event, got %d", len(outbox))
	}
	if outbox[0].EventType != domain.EventTypeReminderPaid {
		t.Errorf("expected %q, got %q", domain.EventTypeReminderPaid, outbox[0].EventType)
	}
}

func TestReminderUseCase_MarkPaid_Idempotent(t *testing.T) {
	uc, _, entryRepo, outboxRepo, _ := newReminderFixture()

	reminder, err := uc.CreateReminder(context.Background(), usecase.CreateReminderInput{
		OwnerID: "owner-1",
		Title:   "Internet",
		Amount:  decimal.NewFromInt(250000),
		DueAt:   time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		paid, err := uc.MarkPaid(context.Background(), "owner-1", reminder.ID)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if paid.Status != domain.ReminderStatusPaid {
			t.Errorf("call %d: expected paid, got %s", i, paid.Status)
		}
	}

	if entries := entryRepo.All(); len(entries) != 1 {
		t.Errorf("expected exactly one derived entry after repeats, got %d", len(entries))
	}
	if events := outboxRepo.Events(); len(events) != 1 {
		t.Errorf("expected exactly one outbox event after repeats, got %d", len(events))
	}
}

func TestReminderUseCase_MarkPaid_LostRace(t *testing.T) {
	uc, reminderRepo, entryRepo, _, _ := newReminderFixture()

	reminderRepo.Create(context.Background(), &domain.Reminder{
		ID:      "rem-1",
		OwnerID: "owner-1",
		Title:   "Điện",
		Amount:  decimal.NewFromInt(400000),
		DueAt:   time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC),
		Status:  domain.ReminderStatusPending,
	})

	// A concurrent caller flips the status between the read and the update.
	reminderRepo.UpdateStatusIfFunc = func(ctx context.Context, tx usecase.Transaction, ownerID, id string, expected, next domain.ReminderStatus) (bool, error) {
		return false, nil
	}

	paid, err := uc.MarkPaid(context.Background(), "owner-1", "rem-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid == nil {
		t.Fatal("expected current reminder state")
	}

	if entries := entryRepo.All(); len(entries) != 0 {
		t.Errorf("losing caller must not append an entry, got %d", len(entries))
	}
}

func TestReminderUseCase_UpdateReminder_StatusTransitions(t *testing.T) {
	uc, _, entryRepo, _, _ := newReminderFixture()

	reminder, err := uc.CreateReminder(context.Background(), usecase.CreateReminderInput{
		OwnerID: "owner-1",
		Title:   "Rác",
		Amount:  decimal.NewFromInt(30000),
		DueAt:   time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paidStatus := domain.ReminderStatusPaid
	updated, err := uc.UpdateReminder(context.Background(), usecase.UpdateReminderInput{
		OwnerID: "owner-1",
		ID:      reminder.ID,
		Status:  &paidStatus,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.ReminderStatusPaid {
		t.Errorf("expected paid, got %s", updated.Status)
	}
	if entries := entryRepo.All(); len(entries) != 1 {
		t.Fatalf("expected derived entry via status patch, got %d", len(entries))
	}

	// Flipping back to pending never reverses the derived entry.
	pendingStatus := domain.ReminderStatusPending
	reverted, err := uc.UpdateReminder(context.Background(), usecase.UpdateReminderInput{
		OwnerID: "owner-1",
		ID:      reminder.ID,
		Status:  &pendingStatus,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reverted.Status != domain.ReminderStatusPending {
		t.Errorf("expected pending, got %s", reverted.Status)
	}
	if entries := entryRepo.All(); len(entries) != 1 {
		t.Errorf("reverting status must keep the derived entry, got %d", len(entries))
	}

	// Paying again appends a second entry: each pending->paid transition
	// derives one.
	if _, err := uc.UpdateReminder(context.Background(), usecase.UpdateReminderInput{
		OwnerID: "owner-1",
		ID:      reminder.ID,
		Status:  &paidStatus,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries := entryRepo.All(); len(entries) != 2 {
		t.Errorf("expected a second derived entry, got %d", len(entries))
	}

	badStatus := domain.ReminderStatus("cancelled")
	if _, err := uc.UpdateReminder(context.Background(), usecase.UpdateReminderInput{
		OwnerID: "owner-1",
		ID:      reminder.ID,
		Status:  &badStatus,
	}); err != domain.ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestReminderUseCase_UpdateReminder_StatusOnlyPatchSkipsFieldWrite(t *testing.T) {
	uc, reminderRepo, entryRepo, _, clock := newReminderFixture()

	reminderRepo.Create(context.Background(), &domain.Reminder{
		ID:      "rem-1",
		OwnerID: "owner-1",
		Title:   "Điện",
		Amount:  decimal.NewFromInt(400000),
		DueAt:   clock.Time.Add(48 * time.Hour),
		Status:  domain.ReminderStatusPending,
	})

	var fieldWrites int
	reminderRepo.UpdateFieldsFunc = func(ctx context.Context, reminder *domain.Reminder) error {
		fieldWrites++
		return nil
	}

	paidStatus := domain.ReminderStatusPaid
	updated, err := uc.UpdateReminder(context.Background(), usecase.UpdateReminderInput{
		OwnerID: "owner-1",
		ID:      "rem-1",
		Status:  &paidStatus,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.ReminderStatusPaid {
		t.Errorf("expected paid, got %s", updated.Status)
	}
	if fieldWrites != 0 {
		t.Errorf("status-only patch must not write fields, got %d writes", fieldWrites)
	}
	if entries := entryRepo.All(); len(entries) != 1 {
		t.Errorf("expected derived entry from the status patch, got %d", len(entries))
	}

	title := "Điện tháng 12"
	if _, err := uc.UpdateReminder(context.Background(), usecase.UpdateReminderInput{
		OwnerID: "owner-1",
		ID:      "rem-1",
		Title:   &title,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fieldWrites != 1 {
		t.Errorf("title patch must write fields once, got %d writes", fieldWrites)
	}
}

func TestReminderUseCase_ListReminders_ProjectsLabels(t *testing.T) {
	uc, reminderRepo, _, _, clock := newReminderFixture()

	seed := []struct {
		id     string
		dueAt  time.Time
		status domain.ReminderStatus
	}{
		{"rem-overdue", clock.Time.Add(-24 * time.Hour), domain.ReminderStatusPending},
		{"rem-upcoming", clock.Time.Add(24 * time.Hour), domain.ReminderStatusPending},
		{"rem-pending", clock.Time.Add(10 * 24 * time.Hour), domain.ReminderStatusPending},
		{"rem-paid", clock.Time.Add(-48 * time.Hour), domain.ReminderStatusPaid},
	}
	for _, s := range seed {
		reminderRepo.Create(context.Background(), &domain.Reminder{
			ID:      s.id,
			OwnerID: "owner-1",
			Title:   s.id,
			Amount:  decimal.NewFromInt(100000),
			DueAt:   s.dueAt,
			Status:  s.status,
		})
	}

	items, total, err := uc.ListReminders(context.Background(), "owner-1", 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 4 {
		t.Errorf("expected total 4, got %d", total)
	}

	labels := make(map[string]domain.StatusLabel, len(items))
	for _, item := range items {
		labels[item.Reminder.ID] = item.StatusLabel
	}

	want := map[string]domain.StatusLabel{
		"rem-overdue":  domain.StatusLabelOverdue,
		"rem-upcoming": domain.StatusLabelUpcoming,
		"rem-pending":  domain.StatusLabelPending,
		"rem-paid":     domain.StatusLabelPaid,
	}
	for id, label := range want {
		if labels[id] != label {
			t.Errorf("%s: expected %s, got %s", id, label, labels[id])
		}
	}
}

func TestReminderUseCase_GetPendingDigest(t *testing.T) {
	uc, reminderRepo, _, _, clock := newReminderFixture()

	for i := 0; i < 8; i++ {
		status := domain.ReminderStatusPending
		if i == 7 {
			status = domain.ReminderStatusPaid
		}
		reminderRepo.Create(context.Background(), &domain.Reminder{
			ID:      string(rune('a' + i)),
			OwnerID: "owner-1",
			Title:   "bill",
			Amount:  decimal.NewFromInt(10000),
			DueAt:   clock.Time.Add(time.Duration(i) * 24 * time.Hour),
			Status:  status,
		})
	}

	digest, err := uc.GetPendingDigest(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(digest.Pending) != 5 {
		t.Errorf("expected digest capped at 5, got %d", len(digest.Pending))
	}
	if digest.PendingCount != len(digest.Pending) {
		t.Errorf("count must match the capped list, got %d vs %d", digest.PendingCount, len(digest.Pending))
	}

	for i := 1; i < len(digest.Pending); i++ {
		if digest.Pending[i].DueAt.Before(digest.Pending[i-1].DueAt) {
			t.Errorf("digest not ordered by due date at slot %d", i)
		}
	}
}
