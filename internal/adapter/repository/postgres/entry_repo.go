package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const insertEntrySQL = `
	INSERT INTO ledger_entries (id, owner_id, amount, kind, category_id, category_name, note, occurred_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Create inserts a new ledger entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	_, err := r.pool.Exec(ctx, insertEntrySQL,
		entry.ID,
		entry.OwnerID,
		entry.Amount.String(),
		entry.Kind,
		entry.CategoryID,
		entry.CategoryName,
		entry.Note,
		entry.OccurredAt,
		entry.CreatedAt,
	)

	return err
}

// CreateTx inserts a new ledger entry within a transaction.
func (r *EntryRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertEntrySQL,
		entry.ID,
		entry.OwnerID,
		entry.Amount.String(),
		entry.Kind,
		entry.CategoryID,
		entry.CategoryName,
		entry.Note,
		entry.OccurredAt,
		entry.CreatedAt,
	)

	return err
}

// GetByID retrieves an owner's entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.LedgerEntry, error) {
	query := `
		SELECT id, owner_id, amount::text, kind, category_id, category_name, note, occurred_at, created_at
		FROM ledger_entries
		WHERE id = $1 AND owner_id = $2
	`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}

	return entry, err
}

// Update persists a field patch.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `
		UPDATE ledger_entries
		SET amount = $3, kind = $4, category_id = $5, category_name = $6, note = $7, occurred_at = $8
		WHERE id = $1 AND owner_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.OwnerID,
		entry.Amount.String(),
		entry.Kind,
		entry.CategoryID,
		entry.CategoryName,
		entry.Note,
		entry.OccurredAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an owner's entry.
func (r *EntryRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// List retrieves an owner's entries with filters, newest first, plus the
// total row count for pagination.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, int64, error) {
	where := `WHERE owner_id = $1`
	args := []any{filter.OwnerID}

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		where += fmt.Sprintf(" AND kind = $%d", len(args))
	}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}

	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}

	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND occurred_at <= $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT id, owner_id, amount::text, kind, category_id, category_name, note, occurred_at, created_at
		FROM ledger_entries
		%s
		ORDER BY occurred_at DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	return entries, total, rows.Err()
}

// DistinctAmounts retrieves the owner's distinct amounts, descending.
func (r *EntryRepository) DistinctAmounts(ctx context.Context, ownerID string, limit int) ([]decimal.Decimal, error) {
	query := `
		SELECT t.amount::text
		FROM (SELECT DISTINCT amount FROM ledger_entries WHERE owner_id = $1) t
		ORDER BY t.amount DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amounts []decimal.Decimal
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}

		amounts = append(amounts, amount)
	}

	return amounts, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		entry  domain.LedgerEntry
		amount string
	)

	err := row.Scan(
		&entry.ID,
		&entry.OwnerID,
		&amount,
		&entry.Kind,
		&entry.CategoryID,
		&entry.CategoryName,
		&entry.Note,
		&entry.OccurredAt,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}
