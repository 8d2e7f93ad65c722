package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// CreateEntryRequest represents a request to create a ledger entry.
type CreateEntryRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Kind         string          `json:"kind"`
	CategoryID   *string         `json:"category_id,omitempty"`
	CategoryName *string         `json:"category_name,omitempty"`
	Note         *string         `json:"note,omitempty"`
	OccurredAt   *time.Time      `json:"occurred_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput(ownerID string) usecase.CreateEntryInput {
	return usecase.CreateEntryInput{
		OwnerID:      ownerID,
		Amount:       r.Amount,
		Kind:         domain.EntryKind(r.Kind),
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		Note:         r.Note,
		OccurredAt:   r.OccurredAt,
	}
}

// UpdateEntryRequest represents a field patch for a ledger entry. Absent
// fields are left untouched.
type UpdateEntryRequest struct {
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Kind         *string          `json:"kind,omitempty"`
	CategoryID   *string          `json:"category_id,omitempty"`
	CategoryName *string          `json:"category_name,omitempty"`
	Note         *string          `json:"note,omitempty"`
	OccurredAt   *time.Time       `json:"occurred_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateEntryRequest) ToUseCaseInput(ownerID, id string) usecase.UpdateEntryInput {
	input := usecase.UpdateEntryInput{
		OwnerID:      ownerID,
		ID:           id,
		Amount:       r.Amount,
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		Note:         r.Note,
		OccurredAt:   r.OccurredAt,
	}

	if r.Kind != nil {
		kind := domain.EntryKind(*r.Kind)
		input.Kind = &kind
	}

	return input
}

// CreateReminderRequest represents a request to create a payment reminder.
type CreateReminderRequest struct {
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
	DueAt  time.Time       `json:"due_at"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReminderRequest) ToUseCaseInput(ownerID string) usecase.CreateReminderInput {
	return usecase.CreateReminderInput{
		OwnerID: ownerID,
		Title:   r.Title,
		Amount:  r.Amount,
		DueAt:   r.DueAt,
	}
}

// UpdateReminderRequest represents a field patch for a reminder. Absent
// fields are left untouched.
type UpdateReminderRequest struct {
	Title  *string          `json:"title,omitempty"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	DueAt  *time.Time       `json:"due_at,omitempty"`
	Status *string          `json:"status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateReminderRequest) ToUseCaseInput(ownerID, id string) usecase.UpdateReminderInput {
	input := usecase.UpdateReminderInput{
		OwnerID: ownerID,
		ID:      id,
		Title:   r.Title,
		Amount:  r.Amount,
		DueAt:   r.DueAt,
	}

	if r.Status != nil {
		status := domain.ReminderStatus(*r.Status)
		input.Status = &status
	}

	return input
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput(ownerID string) usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		OwnerID: ownerID,
		Name:    r.Name,
		Kind:    domain.EntryKind(r.Kind),
	}
}

// UpdateCategoryRequest represents a field patch for a category.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
	Kind *string `json:"kind,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCategoryRequest) ToUseCaseInput(ownerID, id string) usecase.UpdateCategoryInput {
	input := usecase.UpdateCategoryInput{
		OwnerID: ownerID,
		ID:      id,
		Name:    r.Name,
	}

	if r.Kind != nil {
		kind := domain.EntryKind(*r.Kind)
		input.Kind = &kind
	}

	return input
}
