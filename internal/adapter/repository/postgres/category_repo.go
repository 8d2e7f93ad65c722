package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finbook/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, owner_id, name, kind, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.OwnerID,
		category.Name,
		category.Kind,
		category.CreatedAt,
	)

	return err
}

// GetByID retrieves an owner's category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	query := `
		SELECT id, owner_id, name, kind, created_at
		FROM categories
		WHERE id = $1 AND owner_id = $2
	`

	var category domain.Category
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&category.ID,
		&category.OwnerID,
		&category.Name,
		&category.Kind,
		&category.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}

	return &category, err
}

// Update persists a category patch.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $3, kind = $4
		WHERE id = $1 AND owner_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		category.ID,
		category.OwnerID,
		category.Name,
		category.Kind,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// Delete removes an owner's category. Entry snapshots are not touched.
func (r *CategoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// List retrieves an owner's categories, optionally filtered by kind.
func (r *CategoryRepository) List(ctx context.Context, ownerID string, kind *domain.EntryKind) ([]*domain.Category, error) {
	query := `
		SELECT id, owner_id, name, kind, created_at
		FROM categories
		WHERE owner_id = $1
	`
	args := []any{ownerID}

	if kind != nil {
		query += ` AND kind = $2`
		args = append(args, *kind)
	}

	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var category domain.Category
		err := rows.Scan(
			&category.ID,
			&category.OwnerID,
			&category.Name,
			&category.Kind,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}
