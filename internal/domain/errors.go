package domain

import "errors"

var (
	// Entry errors
	ErrEntryNotFound = errors.New("ledger entry not found")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidKind   = errors.New("kind must be income or expense")

	// Reminder errors
	ErrReminderNotFound = errors.New("reminder not found")
	ErrInvalidStatus    = errors.New("status must be pending or paid")
	ErrTitleRequired    = errors.New("title is required")
	ErrDueDateRequired  = errors.New("due date is required")

	// Category errors
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")

	// Report errors
	ErrYearRequired  = errors.New("year is required")
	ErrInvalidPeriod = errors.New("invalid year or month")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
