package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
)

// ReportRepository implements usecase.ReportRepository. All aggregations read
// the category_name snapshot stored on the entry, never the categories table.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// SumByKind sums amounts per kind inside optional inclusive bounds.
func (r *ReportRepository) SumByKind(ctx context.Context, ownerID string, from, to *time.Time) (map[domain.EntryKind]decimal.Decimal, error) {
	where := `WHERE owner_id = $1`
	args := []any{ownerID}

	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}

	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(" AND occurred_at <= $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT kind, SUM(amount)::text
		FROM ledger_entries
		%s
		GROUP BY kind
	`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[domain.EntryKind]decimal.Decimal)
	for rows.Next() {
		var (
			kind domain.EntryKind
			raw  string
		)
		if err := rows.Scan(&kind, &raw); err != nil {
			return nil, err
		}

		total, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}

		totals[kind] = total
	}

	return totals, rows.Err()
}

// SumExpenseByCategory groups expense amounts by category snapshot inside
// optional inclusive bounds, largest total first.
func (r *ReportRepository) SumExpenseByCategory(ctx context.Context, ownerID string, from, to *time.Time) ([]domain.CategoryTotal, error) {
	where := `WHERE owner_id = $1 AND kind = $2`
	args := []any{ownerID, domain.EntryKindExpense}

	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}

	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(" AND occurred_at <= $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT category_name, SUM(amount)::text
		FROM ledger_entries
		%s
		GROUP BY category_name
		ORDER BY SUM(amount) DESC
	`, where)

	return r.queryCategoryTotals(ctx, query, args...)
}

// SumExpenseByCategoryRange is the half-open [start, end) variant used for
// calendar windows.
func (r *ReportRepository) SumExpenseByCategoryRange(ctx context.Context, ownerID string, start, end time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT category_name, SUM(amount)::text
		FROM ledger_entries
		WHERE owner_id = $1 AND kind = $2 AND occurred_at >= $3 AND occurred_at < $4
		GROUP BY category_name
		ORDER BY SUM(amount) DESC
	`

	return r.queryCategoryTotals(ctx, query, ownerID, domain.EntryKindExpense, start, end)
}

// Month buckets come from the stored UTC instant. A bare EXTRACT on a
// timestamptz column converts to the session TimeZone first, which would
// shift end-of-month entries into the neighbouring bucket on non-UTC servers.
const sumExpenseByMonthSQL = `
	SELECT EXTRACT(MONTH FROM occurred_at AT TIME ZONE 'UTC')::int, SUM(amount)::text
	FROM ledger_entries
	WHERE owner_id = $1 AND kind = $2 AND occurred_at >= $3 AND occurred_at < $4
	GROUP BY 1
`

// SumExpenseByMonth groups expense amounts inside [start, end) by the calendar
// month of occurred_at.
func (r *ReportRepository) SumExpenseByMonth(ctx context.Context, ownerID string, start, end time.Time) (map[int]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, sumExpenseByMonthSQL, ownerID, domain.EntryKindExpense, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int]decimal.Decimal)
	for rows.Next() {
		var (
			month int
			raw   string
		)
		if err := rows.Scan(&month, &raw); err != nil {
			return nil, err
		}

		total, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}

		totals[month] = total
	}

	return totals, rows.Err()
}

func (r *ReportRepository) queryCategoryTotals(ctx context.Context, query string, args ...any) ([]domain.CategoryTotal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		var (
			name *string
			raw  string
		)
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, err
		}

		total, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}

		totals = append(totals, domain.CategoryTotal{CategoryName: name, Total: total})
	}

	return totals, rows.Err()
}
