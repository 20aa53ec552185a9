package domain

import (
	"context"
	"strings"
)

// DefaultCategory groups items whose category was absent or empty.
const DefaultCategory = "Other"

type ShoppingListItem struct {
	ID        int64
	Name      string
	Quantity  int
	Price     float64
	Completed bool
	Category  string
	ListID    int64
}

// ItemView is the JSON shape of an item inside a grouped listing.
type ItemView struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Completed bool    `json:"completed"`
	Category  string  `json:"category"`
}

// ListItemsView is the grouped listing of a list's items. Groups map the
// stored category to its items, already ordered by (category, name).
type ListItemsView struct {
	GroupedItems   map[string][]ItemView `json:"grouped_items"`
	EstimatedTotal float64               `json:"estimated_total"`
	PurchasedTotal float64               `json:"purchased_total"`
	ListName       string                `json:"list_name"`
}

// View returns the JSON projection of the item.
func (i *ShoppingListItem) View() ItemView {
	return ItemView{
		ID:        i.ID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		Price:     i.Price,
		Completed: i.Completed,
		Category:  i.Category,
	}
}

// NormalizeCategory substitutes the default for absent or blank categories.
// Items and price history rows always store the normalized value, so grouping
// keys and history lookups agree.
func NormalizeCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return DefaultCategory
	}
	return category
}

// ItemRepository persists list items. The WithHistory variants append the
// given price history entry in the same transaction as the item write; a nil
// entry skips the append.
type ItemRepository interface {
	FindByID(ctx context.Context, itemID int64) (*ShoppingListItem, error)
	FindByList(ctx context.Context, listID int64) ([]ShoppingListItem, error)
	InsertWithHistory(ctx context.Context, item *ShoppingListItem, entry *PriceHistoryEntry) error
	UpdateWithHistory(ctx context.Context, item *ShoppingListItem, entry *PriceHistoryEntry) error
	SetCompleted(ctx context.Context, itemID int64, completed bool) (int64, error)
	Delete(ctx context.Context, itemID int64) (int64, error)
}
