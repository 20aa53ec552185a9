package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/essalvador31/ShoppingListManager/internal/shopping/domain"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) domain.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) FindByID(ctx context.Context, itemID int64) (*domain.ShoppingListItem, error) {
	query := `SELECT id, name, quantity, price, completed, category, list_id
              FROM shopping_list_items WHERE id = $1`

	var item domain.ShoppingListItem
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID, &item.Name, &item.Quantity, &item.Price, &item.Completed, &item.Category, &item.ListID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByList returns the items already ordered by (category, name), the order
// the grouped listing preserves.
func (r *itemRepository) FindByList(ctx context.Context, listID int64) ([]domain.ShoppingListItem, error) {
	query := `SELECT id, name, quantity, price, completed, category, list_id
              FROM shopping_list_items
              WHERE list_id = $1
              ORDER BY category, name, id`

	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ShoppingListItem
	for rows.Next() {
		var item domain.ShoppingListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Price, &item.Completed, &item.Category, &item.ListID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// InsertWithHistory writes the item and, when entry is non-nil, the price
// history append in one transaction.
func (r *itemRepository) InsertWithHistory(ctx context.Context, item *domain.ShoppingListItem, entry *domain.PriceHistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO shopping_list_items (name, quantity, price, completed, category, list_id)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id`
	err = tx.QueryRowContext(ctx, query, item.Name, item.Quantity, item.Price, item.Completed, item.Category, item.ListID).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("could not insert item: %w", err)
	}

	if entry != nil {
		if err := appendPriceHistory(ctx, tx, entry); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UpdateWithHistory overwrites every item field and, when entry is non-nil,
// appends the price history row in the same transaction.
func (r *itemRepository) UpdateWithHistory(ctx context.Context, item *domain.ShoppingListItem, entry *domain.PriceHistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE shopping_list_items
              SET name = $1, quantity = $2, price = $3, category = $4
              WHERE id = $5`
	result, err := tx.ExecContext(ctx, query, item.Name, item.Quantity, item.Price, item.Category, item.ID)
	if err != nil {
		return fmt.Errorf("could not update item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if entry != nil {
		if err := appendPriceHistory(ctx, tx, entry); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *itemRepository) SetCompleted(ctx context.Context, itemID int64, completed bool) (int64, error) {
	query := `UPDATE shopping_list_items SET completed = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, completed, itemID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *itemRepository) Delete(ctx context.Context, itemID int64) (int64, error) {
	query := `DELETE FROM shopping_list_items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, itemID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
