package domain

import "time"

// Category is an owner-scoped grouping for ledger entries.
type Category struct {
	CreatedAt time.Time
	ID        string
	OwnerID   string
	Name      string
	Kind      EntryKind
}

// Validate validates the category's required fields.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrCategoryNameRequired
	}

	if !c.Kind.Valid() {
		return ErrInvalidKind
	}

	return nil
}
