package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// ReminderRepository implements usecase.ReminderRepository.
type ReminderRepository struct {
	pool *pgxpool.Pool
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

// Create inserts a new reminder.
func (r *ReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	query := `
		INSERT INTO reminders (id, owner_id, title, amount, due_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		reminder.ID,
		reminder.OwnerID,
		reminder.Title,
		reminder.Amount.String(),
		reminder.DueAt,
		reminder.Status,
		reminder.CreatedAt,
	)

	return err
}

// GetByID retrieves an owner's reminder by ID.
func (r *ReminderRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Reminder, error) {
	query := `
		SELECT id, owner_id, title, amount::text, due_at, status, created_at
		FROM reminders
		WHERE id = $1 AND owner_id = $2
	`

	reminder, err := scanReminder(r.pool.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReminderNotFound
	}

	return reminder, err
}

// UpdateFields persists title, amount and due date. Status is deliberately
// untouched here; it moves only through UpdateStatusIf.
func (r *ReminderRepository) UpdateFields(ctx context.Context, reminder *domain.Reminder) error {
	query := `
		UPDATE reminders
		SET title = $3, amount = $4, due_at = $5
		WHERE id = $1 AND owner_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		reminder.ID,
		reminder.OwnerID,
		reminder.Title,
		reminder.Amount.String(),
		reminder.DueAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}

	return nil
}

// UpdateStatusIf conditionally flips the status: the row is updated only
// when its persisted status still equals expected, so two concurrent callers
// cannot both win the transition. Returns whether this caller flipped it.
func (r *ReminderRepository) UpdateStatusIf(ctx context.Context, tx usecase.Transaction, ownerID, id string, expected, next domain.ReminderStatus) (bool, error) {
	query := `
		UPDATE reminders
		SET status = $4
		WHERE id = $1 AND owner_id = $2 AND status = $3
	`

	var (
		tag pgconn.CommandTag
		err error
	)

	if tx != nil {
		tag, err = tx.(*Tx).PgxTx().Exec(ctx, query, id, ownerID, expected, next)
	} else {
		tag, err = r.pool.Exec(ctx, query, id, ownerID, expected, next)
	}

	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// List retrieves an owner's reminders ordered by due date, plus the total
// row count for pagination.
func (r *ReminderRepository) List(ctx context.Context, ownerID string, page, limit int) ([]*domain.Reminder, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reminders WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, owner_id, title, amount::text, due_at, status, created_at
		FROM reminders
		WHERE owner_id = $1
		ORDER BY due_at ASC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, 0, err
		}
		reminders = append(reminders, reminder)
	}

	return reminders, total, rows.Err()
}

// ListPendingDue retrieves the owner's nearest-due pending reminders.
func (r *ReminderRepository) ListPendingDue(ctx context.Context, ownerID string, limit int) ([]*domain.Reminder, error) {
	query := `
		SELECT id, owner_id, title, amount::text, due_at, status, created_at
		FROM reminders
		WHERE owner_id = $1 AND status = $2
		ORDER BY due_at ASC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, domain.ReminderStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}

	return reminders, rows.Err()
}

func scanReminder(row pgx.Row) (*domain.Reminder, error) {
	var (
		reminder domain.Reminder
		amount   string
	)

	err := row.Scan(
		&reminder.ID,
		&reminder.OwnerID,
		&reminder.Title,
		&amount,
		&reminder.DueAt,
		&reminder.Status,
		&reminder.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	reminder.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}

	return &reminder, nil
}
