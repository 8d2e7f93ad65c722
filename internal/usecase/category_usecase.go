package usecase

import (
	"context"

	"github.com/iho/finbook/internal/domain"
)

// CategoryUseCase handles category business logic.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	idGen        IDGenerator
	clock        Clock
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, idGen IDGenerator, clock Clock) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	OwnerID string
	Name    string
	Kind    domain.EntryKind
}

// CreateCategory creates a category.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		ID:        uc.idGen.Generate(),
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		Kind:      input.Kind,
		CreatedAt: uc.clock.Now(),
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategoryInput represents a field patch for a category.
type UpdateCategoryInput struct {
	Name    *string
	Kind    *domain.EntryKind
	OwnerID string
	ID      string
}

// UpdateCategory patches a category. Renames do not touch the snapshots on
// entries that referenced it.
func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}

	if input.Kind != nil {
		category.Kind = *input.Kind
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes an owner's category. Entries keep their snapshots.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, ownerID, id string) error {
	return uc.categoryRepo.Delete(ctx, ownerID, id)
}

// ListCategories lists an owner's categories, optionally filtered by kind.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, ownerID string, kind *domain.EntryKind) ([]*domain.Category, error) {
	return uc.categoryRepo.List(ctx, ownerID, kind)
}
