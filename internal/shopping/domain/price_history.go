package domain

import "context"

// PriceHistoryEntry records a price a user paid for an item name. The log is
// append-only; only the entry with the highest id per (user, name) is ever
// consulted, so entries are never updated or deleted.
type PriceHistoryEntry struct {
	ID            int64
	ItemNameLower string
	Price         float64
	Category      string
	UserID        int64
}

// PriceSuggestion is the answer to a price lookup.
type PriceSuggestion struct {
	SuggestedPrice    float64 `json:"suggested_price"`
	SuggestedCategory string  `json:"suggested_category"`
}

type PriceHistoryRepository interface {
	// FindLatest returns the entry with the highest id for the user and
	// lowercase item name, or sql.ErrNoRows when none exists.
	FindLatest(ctx context.Context, userID int64, itemNameLower string) (*PriceHistoryEntry, error)
}
