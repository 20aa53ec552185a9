package domain

import (
	"context"
	"time"
)

// DefaultListName is given to lists created implicitly on first access.
const DefaultListName = "New List"

// ShoppingList is a user-owned container of items. A user has at most one
// active list; finalizing freezes TotalPrice and makes the list deletable.
type ShoppingList struct {
	ID         int64
	Name       string
	CreatedAt  time.Time
	IsActive   bool
	TotalPrice float64
	UserID     int64
}

// FinalizedListView is the dashboard row for an archived list.
type FinalizedListView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_date"`
	TotalPrice float64   `json:"total_price"`
}

// ListRepository persists shopping lists. Single-statement mutations report
// affected rows so callers can distinguish no-op from success.
type ListRepository interface {
	FindActiveByUser(ctx context.Context, userID int64) (*ShoppingList, error)
	CreateActive(ctx context.Context, userID int64, name string) error
	FindByID(ctx context.Context, listID int64) (*ShoppingList, error)
	FindByIDAndUser(ctx context.Context, listID, userID int64) (*ShoppingList, error)
	Rename(ctx context.Context, listID, userID int64, name string) (int64, error)
	Finalize(ctx context.Context, listID, userID int64) (int64, error)
	DeleteFinalized(ctx context.Context, listID, userID int64) (int64, error)
	FindFinalizedByUser(ctx context.Context, userID int64) ([]FinalizedListView, error)
}
