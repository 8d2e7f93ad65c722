package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
)

// ReportUseCase builds owner-scoped financial reports. All operations are
// pure reads.
type ReportUseCase struct {
	reportRepo ReportRepository
	clock      Clock
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(reportRepo ReportRepository, clock Clock) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
		clock:      clock,
	}
}

// SummaryInput represents input for the summary report. Either bound may be
// nil; supplied bounds are inclusive.
type SummaryInput struct {
	From    *time.Time
	To      *time.Time
	OwnerID string
}

// Summary returns windowed income/expense totals, their balance and the
// expense grouping by category snapshot.
func (uc *ReportUseCase) Summary(ctx context.Context, input SummaryInput) (*domain.SummaryReport, error) {
	totals, err := uc.reportRepo.SumByKind(ctx, input.OwnerID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	byCategory, err := uc.reportRepo.SumExpenseByCategory(ctx, input.OwnerID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	income := totals[domain.EntryKindIncome]
	expense := totals[domain.EntryKindExpense]

	return &domain.SummaryReport{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
		ByCategory:   namedTotals(byCategory),
	}, nil
}

// MonthlyBreakdown returns per-month expense totals for a year. A missing or
// malformed year silently falls back to the current calendar year. The
// result always carries exactly twelve slots.
func (uc *ReportUseCase) MonthlyBreakdown(ctx context.Context, ownerID, rawYear string) (*domain.MonthlyReport, error) {
	year := resolveYear(rawYear, uc.clock.Now())
	start, end := yearWindow(year)

	byMonth, err := uc.reportRepo.SumExpenseByMonth(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	monthly := make([]domain.MonthTotal, 0, 12)
	for month := 1; month <= 12; month++ {
		total, ok := byMonth[month]
		if !ok {
			total = decimal.Zero
		}

		monthly = append(monthly, domain.MonthTotal{
			Month:        month,
			TotalExpense: total,
		})
	}

	return &domain.MonthlyReport{
		Year:    year,
		Monthly: monthly,
	}, nil
}

// ByCategoryForMonth returns the expense grouping for one calendar month.
// Missing or malformed year/month silently fall back to the current date
// components.
func (uc *ReportUseCase) ByCategoryForMonth(ctx context.Context, ownerID, rawYear, rawMonth string) (*domain.PeriodReport, error) {
	now := uc.clock.Now()
	year := resolveYear(rawYear, now)
	month := resolveMonth(rawMonth, now)
	start, end := monthWindow(year, month)

	byCategory, err := uc.reportRepo.SumExpenseByCategoryRange(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	return &domain.PeriodReport{
		Year:       year,
		Month:      &month,
		ByCategory: namedTotals(byCategory),
	}, nil
}

// ByPeriod returns the expense grouping for a month, or for a whole year
// when month is omitted. Unlike the defaulting reports, year is required:
// missing or unparseable input is a validation error.
func (uc *ReportUseCase) ByPeriod(ctx context.Context, ownerID, rawYear, rawMonth string) (*domain.PeriodReport, error) {
	year, err := parseRequiredYear(rawYear)
	if err != nil {
		return nil, err
	}

	month, err := parseOptionalMonth(rawMonth)
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	if month != nil {
		start, end = monthWindow(year, *month)
	} else {
		start, end = yearWindow(year)
	}

	byCategory, err := uc.reportRepo.SumExpenseByCategoryRange(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	return &domain.PeriodReport{
		Year:       year,
		Month:      month,
		ByCategory: namedTotals(byCategory),
	}, nil
}

// namedTotals substitutes the uncategorized label for absent snapshots and
// sorts descending by total.
func namedTotals(rows []domain.CategoryTotal) []domain.NamedTotal {
	result := make([]domain.NamedTotal, 0, len(rows))
	for _, row := range rows {
		name := domain.UncategorizedLabel
		if row.CategoryName != nil && *row.CategoryName != "" {
			name = *row.CategoryName
		}

		result = append(result, domain.NamedTotal{
			CategoryName: name,
			Total:        row.Total,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})

	return result
}
