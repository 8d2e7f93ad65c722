package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID           string          `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Kind         string          `json:"kind"`
	CategoryID   *string         `json:"category_id,omitempty"`
	CategoryName *string         `json:"category_name,omitempty"`
	Note         *string         `json:"note,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
	CreatedAt    time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:           e.ID,
		Amount:       e.Amount,
		Kind:         string(e.Kind),
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Note:         e.Note,
		OccurredAt:   e.OccurredAt,
		CreatedAt:    e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// PaginationResponse describes one page of a listing.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// NewPagination builds pagination metadata from a listing result.
func NewPagination(page, limit int, total int64) PaginationResponse {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// EntryListResponse is a page of ledger entries.
type EntryListResponse struct {
	Items      []*EntryResponse   `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// ReminderResponse represents a reminder in API responses. StatusLabel is
// present only on listings, where it is derived at read time.
type ReminderResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	DueAt       time.Time       `json:"due_at"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReminderFromDomain converts a domain reminder to a response.
func ReminderFromDomain(r *domain.Reminder) *ReminderResponse {
	return &ReminderResponse{
		ID:        r.ID,
		Title:     r.Title,
		Amount:    r.Amount,
		DueAt:     r.DueAt,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

// ReminderItemsFromUseCase converts projected listing items to responses.
func ReminderItemsFromUseCase(items []usecase.ReminderListItem) []*ReminderResponse {
	result := make([]*ReminderResponse, len(items))
	for i, item := range items {
		resp := ReminderFromDomain(item.Reminder)
		resp.StatusLabel = string(item.StatusLabel)
		result[i] = resp
	}
	return result
}

// RemindersFromDomain converts domain reminders to responses.
func RemindersFromDomain(reminders []*domain.Reminder) []*ReminderResponse {
	result := make([]*ReminderResponse, len(reminders))
	for i, r := range reminders {
		result[i] = ReminderFromDomain(r)
	}
	return result
}

// ReminderListResponse is a page of reminders.
type ReminderListResponse struct {
	Items      []*ReminderResponse `json:"items"`
	Pagination PaginationResponse  `json:"pagination"`
}

// PendingDigestResponse holds the nearest-due pending reminders.
type PendingDigestResponse struct {
	Pending      []*ReminderResponse `json:"pending"`
	PendingCount int                 `json:"pending_count"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      string(c.Kind),
		CreatedAt: c.CreatedAt,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// NamedTotalResponse is one row of a grouped expense report.
type NamedTotalResponse struct {
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

func namedTotalsFromDomain(totals []domain.NamedTotal) []NamedTotalResponse {
	result := make([]NamedTotalResponse, len(totals))
	for i, t := range totals {
		result[i] = NamedTotalResponse{
			CategoryName: t.CategoryName,
			Total:        t.Total,
		}
	}
	return result
}

// SummaryResponse represents the summary report.
type SummaryResponse struct {
	TotalIncome  decimal.Decimal      `json:"total_income"`
	TotalExpense decimal.Decimal      `json:"total_expense"`
	Balance      decimal.Decimal      `json:"balance"`
	ByCategory   []NamedTotalResponse `json:"by_category"`
}

// SummaryFromDomain converts a domain summary report to a response.
func SummaryFromDomain(r *domain.SummaryReport) *SummaryResponse {
	return &SummaryResponse{
		TotalIncome:  r.TotalIncome,
		TotalExpense: r.TotalExpense,
		Balance:      r.Balance,
		ByCategory:   namedTotalsFromDomain(r.ByCategory),
	}
}

// MonthTotalResponse is one slot of a monthly breakdown.
type MonthTotalResponse struct {
	Month        int             `json:"month"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// MonthlyResponse represents the monthly breakdown report.
type MonthlyResponse struct {
	Year    int                  `json:"year"`
	Monthly []MonthTotalResponse `json:"monthly"`
}

// MonthlyFromDomain converts a domain monthly report to a response.
func MonthlyFromDomain(r *domain.MonthlyReport) *MonthlyResponse {
	monthly := make([]MonthTotalResponse, len(r.Monthly))
	for i, m := range r.Monthly {
		monthly[i] = MonthTotalResponse{
			Month:        m.Month,
			TotalExpense: m.TotalExpense,
		}
	}

	return &MonthlyResponse{
		Year:    r.Year,
		Monthly: monthly,
	}
}

// PeriodResponse represents a by-category report over a month or year.
type PeriodResponse struct {
	Year       int                  `json:"year"`
	Month      *int                 `json:"month,omitempty"`
	ByCategory []NamedTotalResponse `json:"by_category"`
}

// PeriodFromDomain converts a domain period report to a response.
func PeriodFromDomain(r *domain.PeriodReport) *PeriodResponse {
	return &PeriodResponse{
		Year:       r.Year,
		Month:      r.Month,
		ByCategory: namedTotalsFromDomain(r.ByCategory),
	}
}

// AmountSuggestionsResponse holds distinct historical amounts, descending.
type AmountSuggestionsResponse struct {
	Amounts []decimal.Decimal `json:"amounts"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
