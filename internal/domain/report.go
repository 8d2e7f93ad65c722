package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one row of a grouped expense aggregation. CategoryName is
// nil for entries written without a snapshot; report builders substitute
// UncategorizedLabel at the edge.
type CategoryTotal struct {
	CategoryName *string
	Total        decimal.Decimal
}

// SummaryReport holds windowed income/expense totals and the expense
// grouping by category snapshot, sorted descending by total.
type SummaryReport struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
	ByCategory   []NamedTotal
}

// NamedTotal is a display-ready grouped total.
type NamedTotal struct {
	CategoryName string
	Total        decimal.Decimal
}

// MonthTotal is one slot of a monthly breakdown.
type MonthTotal struct {
	Month        int
	TotalExpense decimal.Decimal
}

// MonthlyReport always carries exactly twelve slots, January through
// December, zero-filled for months without data.
type MonthlyReport struct {
	Year    int
	Monthly []MonthTotal
}

// PeriodReport is a by-category expense report over a month or a whole year.
// Month is nil for year-wide windows.
type PeriodReport struct {
	Month      *int
	Year       int
	ByCategory []NamedTotal
}
