package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/essalvador31/ShoppingListManager/internal/shopping/domain"
)

type priceHistoryRepository struct {
	db *sql.DB
}

func NewPriceHistoryRepository(db *sql.DB) domain.PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

// FindLatest picks the highest-id entry; insertion order defines recency.
// Served by the (user_id, item_name_lower, id DESC) index.
func (r *priceHistoryRepository) FindLatest(ctx context.Context, userID int64, itemNameLower string) (*domain.PriceHistoryEntry, error) {
	query := `SELECT id, item_name_lower, price, category, user_id
              FROM price_history
              WHERE user_id = $1 AND item_name_lower = $2
              ORDER BY id DESC
              LIMIT 1`

	var entry domain.PriceHistoryEntry
	err := r.db.QueryRowContext(ctx, query, userID, itemNameLower).Scan(
		&entry.ID, &entry.ItemNameLower, &entry.Price, &entry.Category, &entry.UserID)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// appendPriceHistory writes one log entry inside the caller's transaction.
// The log is append-only; compaction is unnecessary because lookups only ever
// read the newest entry.
func appendPriceHistory(ctx context.Context, tx *sql.Tx, entry *domain.PriceHistoryEntry) error {
	query := `INSERT INTO price_history (item_name_lower, price, category, user_id)
              VALUES ($1, $2, $3, $4)
              RETURNING id`
	err := tx.QueryRowContext(ctx, query, entry.ItemNameLower, entry.Price, entry.Category, entry.UserID).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("could not append price history: %w", err)
	}
	return nil
}
