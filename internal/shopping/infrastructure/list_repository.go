package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/essalvador31/ShoppingListManager/internal/shopping/domain"
)

type listRepository struct {
	db *sql.DB
}

func NewListRepository(db *sql.DB) domain.ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) FindActiveByUser(ctx context.Context, userID int64) (*domain.ShoppingList, error) {
	query := `SELECT id, name, created_at, is_active, total_price, user_id
              FROM shopping_lists
              WHERE user_id = $1 AND is_active`

	var list domain.ShoppingList
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&list.ID, &list.Name, &list.CreatedAt, &list.IsActive, &list.TotalPrice, &list.UserID)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateActive inserts a fresh active list. The partial unique index on
// (user_id) WHERE is_active makes the insert a no-op when an active list
// already exists, so concurrent first calls converge on a single row.
func (r *listRepository) CreateActive(ctx context.Context, userID int64, name string) error {
	query := `INSERT INTO shopping_lists (name, created_at, is_active, total_price, user_id)
              VALUES ($1, $2, TRUE, 0, $3)
              ON CONFLICT (user_id) WHERE is_active DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, name, time.Now().UTC(), userID)
	return err
}

func (r *listRepository) FindByID(ctx context.Context, listID int64) (*domain.ShoppingList, error) {
	query := `SELECT id, name, created_at, is_active, total_price, user_id
              FROM shopping_lists WHERE id = $1`

	var list domain.ShoppingList
	err := r.db.QueryRowContext(ctx, query, listID).Scan(
		&list.ID, &list.Name, &list.CreatedAt, &list.IsActive, &list.TotalPrice, &list.UserID)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listRepository) FindByIDAndUser(ctx context.Context, listID, userID int64) (*domain.ShoppingList, error) {
	query := `SELECT id, name, created_at, is_active, total_price, user_id
              FROM shopping_lists WHERE id = $1 AND user_id = $2`

	var list domain.ShoppingList
	err := r.db.QueryRowContext(ctx, query, listID, userID).Scan(
		&list.ID, &list.Name, &list.CreatedAt, &list.IsActive, &list.TotalPrice, &list.UserID)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listRepository) Rename(ctx context.Context, listID, userID int64, name string) (int64, error) {
	query := `UPDATE shopping_lists SET name = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.ExecContext(ctx, query, name, listID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Finalize snapshots the item total and deactivates the list in a single
// statement, so the stored total always matches the items at that moment.
func (r *listRepository) Finalize(ctx context.Context, listID, userID int64) (int64, error) {
	query := `UPDATE shopping_lists
              SET is_active = FALSE,
                  total_price = COALESCE(
                      (SELECT SUM(quantity * price)
                       FROM shopping_list_items
                       WHERE list_id = shopping_lists.id), 0)
              WHERE id = $1 AND user_id = $2 AND is_active`

	result, err := r.db.ExecContext(ctx, query, listID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteFinalized only matches inactive lists, which is what protects the
// active list from deletion. Items go with the list via FK cascade.
func (r *listRepository) DeleteFinalized(ctx context.Context, listID, userID int64) (int64, error) {
	query := `DELETE FROM shopping_lists WHERE id = $1 AND user_id = $2 AND NOT is_active`

	result, err := r.db.ExecContext(ctx, query, listID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *listRepository) FindFinalizedByUser(ctx context.Context, userID int64) ([]domain.FinalizedListView, error) {
	query := `SELECT id, name, created_at, total_price
              FROM shopping_lists
              WHERE user_id = $1 AND NOT is_active
              ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []domain.FinalizedListView
	for rows.Next() {
		var list domain.FinalizedListView
		if err := rows.Scan(&list.ID, &list.Name, &list.CreatedAt, &list.TotalPrice); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}
