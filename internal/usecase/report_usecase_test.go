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

func newReportFixture() (*usecase.ReportUseCase, *mocks.MockReportRepository, *mocks.MockClock) {
	reportRepo := mocks.NewMockReportRepository()
	clock := mocks.NewMockClock(time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC))

	return usecase.NewReportUseCase(reportRepo, clock), reportRepo, clock
}

func TestReportUseCase_Summary(t *testing.T) {
	uc, reportRepo, _ := newReportFixture()

	reportRepo.SumByKindFunc = func(ctx context.Context, ownerID string, from, to *time.Time) (map[domain.EntryKind]decimal.Decimal, error) {
		return map[domain.EntryKind]decimal.Decimal{
			domain.EntryKindIncome:  decimal.NewFromInt(5000000),
			domain.EntryKindExpense: decimal.NewFromInt(1200000),
		}, nil
	}
	reportRepo.SumExpenseByCategoryFunc = func(ctx context.Context, ownerID string, from, to *time.Time) ([]domain.CategoryTotal, error) {
		anUong := "Ăn uống"
		return []domain.CategoryTotal{
			{CategoryName: nil, Total: decimal.NewFromInt(200000)},
			{CategoryName: &anUong, Total: decimal.NewFromInt(1000000)},
		}, nil
	}

	report, err := uc.Summary(context.Background(), usecase.SummaryInput{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.TotalIncome.Equal(decimal.NewFromInt(5000000)) {
		t.Errorf("expected income 5000000, got %s", report.TotalIncome)
	}
	if !report.TotalExpense.Equal(decimal.NewFromInt(1200000)) {
		t.Errorf("expected expense 1200000, got %s", report.TotalExpense)
	}
	if !report.Balance.Equal(decimal.NewFromInt(3800000)) {
		t.Errorf("expected balance 3800000, got %s", report.Balance)
	}

	if len(report.ByCategory) != 2 {
		t.Fatalf("expected 2 category rows, got %d", len(report.ByCategory))
	}

	// Sorted descending by total, nil snapshot substituted.
	if report.ByCategory[0].CategoryName != "Ăn uống" {
		t.Errorf("expected largest group first, got %q", report.ByCategory[0].CategoryName)
	}
	if report.ByCategory[1].CategoryName != domain.UncategorizedLabel {
		t.Errorf("expected %q, got %q", domain.UncategorizedLabel, report.ByCategory[1].CategoryName)
	}
}

func TestReportUseCase_Summary_EmptyBook(t *testing.T) {
	uc, _, _ := newReportFixture()

	report, err := uc.Summary(context.Background(), usecase.SummaryInput{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.TotalIncome.IsZero() || !report.TotalExpense.IsZero() || !report.Balance.IsZero() {
		t.Errorf("expected all-zero summary, got %s/%s/%s",
			report.TotalIncome, report.TotalExpense, report.Balance)
	}
	if len(report.ByCategory) != 0 {
		t.Errorf("expected empty grouping, got %d rows", len(report.ByCategory))
	}
}

func TestReportUseCase_MonthlyBreakdown(t *testing.T) {
	uc, reportRepo, _ := newReportFixture()

	var gotStart, gotEnd time.Time
	reportRepo.SumExpenseByMonthFunc = func(ctx context.Context, ownerID string, start, end time.Time) (map[int]decimal.Decimal, error) {
		gotStart, gotEnd = start, end
		return map[int]decimal.Decimal{3: decimal.NewFromInt(100000)}, nil
	}

	report, err := uc.MonthlyBreakdown(context.Background(), "owner-1", "2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Year != 2025 {
		t.Errorf("expected year 2025, got %d", report.Year)
	}
	if len(report.Monthly) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(report.Monthly))
	}

	for _, slot := range report.Monthly {
		want := decimal.Zero
		if slot.Month == 3 {
			want = decimal.NewFromInt(100000)
		}
		if !slot.TotalExpense.Equal(want) {
			t.Errorf("month %d: expected %s, got %s", slot.Month, want, slot.TotalExpense)
		}
	}

	wantStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !gotStart.Equal(wantStart) || !gotEnd.Equal(wantStart.AddDate(1, 0, 0)) {
		t.Errorf("expected window [%v, %v), got [%v, %v)", wantStart, wantStart.AddDate(1, 0, 0), gotStart, gotEnd)
	}
}

func TestReportUseCase_MonthlyBreakdown_DefaultsYear(t *testing.T) {
	uc, _, clock := newReportFixture()

	for _, raw := range []string{"", "abc", "-3"} {
		report, err := uc.MonthlyBreakdown(context.Background(), "owner-1", raw)
		if err != nil {
			t.Fatalf("raw %q: unexpected error: %v", raw, err)
		}
		if report.Year != clock.Time.Year() {
			t.Errorf("raw %q: expected current year fallback, got %d", raw, report.Year)
		}
	}
}

func TestReportUseCase_ByCategoryForMonth_Defaults(t *testing.T) {
	uc, reportRepo, clock := newReportFixture()

	var gotStart, gotEnd time.Time
	reportRepo.SumExpenseByCategoryRangeFunc = func(ctx context.Context, ownerID string, start, end time.Time) ([]domain.CategoryTotal, error) {
		gotStart, gotEnd = start, end
		return nil, nil
	}

	report, err := uc.ByCategoryForMonth(context.Background(), "owner-1", "", "not-a-month")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Year != clock.Time.Year() {
		t.Errorf("expected current year, got %d", report.Year)
	}
	if report.Month == nil || *report.Month != int(clock.Time.Month()) {
		t.Errorf("expected current month, got %v", report.Month)
	}

	wantStart := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	if !gotStart.Equal(wantStart) || !gotEnd.Equal(wantStart.AddDate(0, 1, 0)) {
		t.Errorf("unexpected window [%v, %v)", gotStart, gotEnd)
	}
}

func TestReportUseCase_ByPeriod(t *testing.T) {
	uc, reportRepo, _ := newReportFixture()

	var gotStart, gotEnd time.Time
	reportRepo.SumExpenseByCategoryRangeFunc = func(ctx context.Context, ownerID string, start, end time.Time) ([]domain.CategoryTotal, error) {
		gotStart, gotEnd = start, end
		return nil, nil
	}

	t.Run("year required", func(t *testing.T) {
		if _, err := uc.ByPeriod(context.Background(), "owner-1", "", ""); err != domain.ErrYearRequired {
			t.Errorf("expected ErrYearRequired, got %v", err)
		}
		if _, err := uc.ByPeriod(context.Background(), "owner-1", "twenty", ""); err != domain.ErrInvalidPeriod {
			t.Errorf("expected ErrInvalidPeriod, got %v", err)
		}
	})

	t.Run("month validated when present", func(t *testing.T) {
		if _, err := uc.ByPeriod(context.Background(), "owner-1", "2025", "13"); err != domain.ErrInvalidPeriod {
			t.Errorf("expected ErrInvalidPeriod, got %v", err)
		}
		if _, err := uc.ByPeriod(context.Background(), "owner-1", "2025", "0"); err != domain.ErrInvalidPeriod {
			t.Errorf("expected ErrInvalidPeriod, got %v", err)
		}
	})

	t.Run("month window", func(t *testing.T) {
		report, err := uc.ByPeriod(context.Background(), "owner-1", "2025", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Month == nil || *report.Month != 2 {
			t.Errorf("expected month 2, got %v", report.Month)
		}

		wantStart := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		if !gotStart.Equal(wantStart) || !gotEnd.Equal(wantEnd) {
			t.Errorf("expected [%v, %v), got [%v, %v)", wantStart, wantEnd, gotStart, gotEnd)
		}
	})

	t.Run("year window when month omitted", func(t *testing.T) {
		report, err := uc.ByPeriod(context.Background(), "owner-1", "2024", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Month != nil {
			t.Errorf("expected nil month, got %v", *report.Month)
		}

		wantStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		if !gotStart.Equal(wantStart) || !gotEnd.Equal(wantStart.AddDate(1, 0, 0)) {
			t.Errorf("unexpected window [%v, %v)", gotStart, gotEnd)
		}
	})
}
