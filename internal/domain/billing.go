package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Labels attached to entries and reminders produced by the billing flow.
const (
	// BillCategoryName is the snapshot written on entries derived from a
	// paid reminder.
	BillCategoryName = "Hóa đơn"

	// DefaultReminderTitle is used when a detected bill entry has no note.
	DefaultReminderTitle = "Hóa đơn"

	// UncategorizedLabel groups entries without a category snapshot in
	// reports.
	UncategorizedLabel = "Uncategorized"
)

// billToken is the folded form every candidate category name is compared
// against. Exact equality only: "Hóa đơn tháng 12" is not a bill category.
const billToken = "hoa don"

// NormalizeCategoryName folds a category name for bill detection: decompose
// to NFD, drop combining diacritical marks, fold đ/Đ to d, lowercase and trim
// surrounding whitespace. The fold is idempotent.
func NormalizeCategoryName(name string) string {
	var b strings.Builder

	for _, r := range norm.NFD.String(name) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}

		switch r {
		case 'đ':
			b.WriteRune('d')
		case 'Đ':
			b.WriteRune('D')
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(strings.ToLower(b.String()))
}

// IsBillCategory reports whether a category name means "bill/invoice".
func IsBillCategory(name string) bool {
	return NormalizeCategoryName(name) == billToken
}
