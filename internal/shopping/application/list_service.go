package application

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/essalvador31/ShoppingListManager/internal/shopping/domain"
)

var (
	// ErrListNotFound covers absent lists, lists owned by someone else,
	// and wrong-state lists alike, so the API never reveals which it was.
	ErrListNotFound = errors.New("shopping list not found")
	// ErrListNotActive marks an owned list in the wrong lifecycle state.
	// Handlers map it to the same response as ErrListNotFound.
	ErrListNotActive      = errors.New("shopping list is not active")
	ErrItemNotFound       = errors.New("item not found")
	ErrUnauthorizedAccess = errors.New("unauthorized: user does not own this item")
	ErrNoPriceHistory     = errors.New("no price history for item")
)

type Service interface {
	GetOrCreateActiveList(ctx context.Context, userID int64) (*domain.ShoppingList, error)
	GetFinalizedLists(ctx context.Context, userID int64) ([]domain.FinalizedListView, error)
	RenameList(ctx context.Context, userID, listID int64, name string) (*domain.ShoppingList, error)
	FinalizeList(ctx context.Context, userID, listID int64) error
	DeleteList(ctx context.Context, userID, listID int64) error
	ListItems(ctx context.Context, userID, listID int64) (*domain.ListItemsView, error)
	AddItem(ctx context.Context, userID, listID int64, name string, quantity int, price float64, category string) (*domain.ItemView, error)
	UpdateItem(ctx context.Context, userID, itemID int64, name string, quantity int, price float64, category string) error
	ToggleItem(ctx context.Context, userID, itemID int64) (int64, bool, error)
	DeleteItem(ctx context.Context, userID, itemID int64) error
	SuggestPrice(ctx context.Context, userID int64, itemName string) (*domain.PriceSuggestion, error)
}

type service struct {
	lists   domain.ListRepository
	items   domain.ItemRepository
	history domain.PriceHistoryRepository
}

func NewListService(lists domain.ListRepository, items domain.ItemRepository, history domain.PriceHistoryRepository) Service {
	return &service{
		lists:   lists,
		items:   items,
		history: history,
	}
}

// GetOrCreateActiveList returns the user's single active list, creating it on
// first access. The insert is a no-op when an active list already exists, so
// the follow-up select always lands on the same row even under a race.
func (s *service) GetOrCreateActiveList(ctx context.Context, userID int64) (*domain.ShoppingList, error) {
	list, err := s.lists.FindActiveByUser(ctx, userID)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if err := s.lists.CreateActive(ctx, userID, domain.DefaultListName); err != nil {
		return nil, err
	}
	return s.lists.FindActiveByUser(ctx, userID)
}

func (s *service) GetFinalizedLists(ctx context.Context, userID int64) ([]domain.FinalizedListView, error) {
	return s.lists.FindFinalizedByUser(ctx, userID)
}

func (s *service) RenameList(ctx context.Context, userID, listID int64, name string) (*domain.ShoppingList, error) {
	affected, err := s.lists.Rename(ctx, listID, userID, name)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrListNotFound
	}
	return s.lists.FindByIDAndUser(ctx, listID, userID)
}

// FinalizeList freezes the list: its total becomes a snapshot of the item sum
// at this moment and the list leaves the active slot for good. Items stay
// editable afterwards without touching the snapshot.
func (s *service) FinalizeList(ctx context.Context, userID, listID int64) error {
	list, err := s.lists.FindByIDAndUser(ctx, listID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrListNotFound
		}
		return err
	}
	if !list.IsActive {
		return ErrListNotActive
	}

	affected, err := s.lists.Finalize(ctx, listID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		// Finalized by a concurrent request between the check and here.
		return ErrListNotActive
	}
	return nil
}

func (s *service) DeleteList(ctx context.Context, userID, listID int64) error {
	affected, err := s.lists.DeleteFinalized(ctx, listID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrListNotFound
	}
	return nil
}

// ListItems returns the items grouped by category, each group keeping the
// (category, name) order, plus the estimated and purchased totals.
func (s *service) ListItems(ctx context.Context, userID, listID int64) (*domain.ListItemsView, error) {
	list, err := s.lists.FindByIDAndUser(ctx, listID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	items, err := s.items.FindByList(ctx, listID)
	if err != nil {
		return nil, err
	}

	view := &domain.ListItemsView{
		GroupedItems: make(map[string][]domain.ItemView),
		ListName:     list.Name,
	}
	for i := range items {
		item := &items[i]
		view.GroupedItems[item.Category] = append(view.GroupedItems[item.Category], item.View())
		view.EstimatedTotal += float64(item.Quantity) * item.Price
		if item.Completed {
			view.PurchasedTotal += float64(item.Quantity) * item.Price
		}
	}
	return view, nil
}

// AddItem appends an item to the user's active list. A zero price falls back
// to the most recent price paid for the same name; the category is never
// filled from history. Every resulting positive price grows the history log.
func (s *service) AddItem(ctx context.Context, userID, listID int64, name string, quantity int, price float64, category string) (*domain.ItemView, error) {
	list, err := s.lists.FindByIDAndUser(ctx, listID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if !list.IsActive {
		return nil, ErrListNotActive
	}

	category = domain.NormalizeCategory(category)
	nameLower := strings.ToLower(name)

	if price == 0 {
		last, err := s.history.FindLatest(ctx, userID, nameLower)
		if err == nil {
			price = last.Price
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	item := &domain.ShoppingListItem{
		Name:     name,
		Quantity: quantity,
		Price:    price,
		Category: category,
		ListID:   listID,
	}
	if err := s.items.InsertWithHistory(ctx, item, s.historyEntry(userID, nameLower, price, category)); err != nil {
		return nil, err
	}

	view := item.View()
	return &view, nil
}

// UpdateItem overwrites every field of an item. Finalized lists are not
// exempt; the list total stays the finalize-time snapshot regardless.
func (s *service) UpdateItem(ctx context.Context, userID, itemID int64, name string, quantity int, price float64, category string) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	category = domain.NormalizeCategory(category)
	item.Name = name
	item.Quantity = quantity
	item.Price = price
	item.Category = category

	entry := s.historyEntry(userID, strings.ToLower(name), price, category)
	if err := s.items.UpdateWithHistory(ctx, item, entry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

func (s *service) ToggleItem(ctx context.Context, userID, itemID int64) (int64, bool, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return 0, false, err
	}

	completed := !item.Completed
	affected, err := s.items.SetCompleted(ctx, itemID, completed)
	if err != nil {
		return 0, false, err
	}
	if affected == 0 {
		return 0, false, ErrItemNotFound
	}
	return itemID, completed, nil
}

func (s *service) DeleteItem(ctx context.Context, userID, itemID int64) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}

	affected, err := s.items.Delete(ctx, itemID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// SuggestPrice returns the most recently recorded price and category for the
// item name, matching case-insensitively.
func (s *service) SuggestPrice(ctx context.Context, userID int64, itemName string) (*domain.PriceSuggestion, error) {
	entry, err := s.history.FindLatest(ctx, userID, strings.ToLower(itemName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoPriceHistory
		}
		return nil, err
	}
	return &domain.PriceSuggestion{
		SuggestedPrice:    entry.Price,
		SuggestedCategory: entry.Category,
	}, nil
}

// ownedItem loads an item and verifies the caller owns its list. Absence and
// foreign ownership stay distinct errors; lifecycle state is not checked.
func (s *service) ownedItem(ctx context.Context, userID, itemID int64) (*domain.ShoppingListItem, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	list, err := s.lists.FindByID(ctx, item.ListID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}
	return item, nil
}

// historyEntry builds the append-only log row for a write, or nil when the
// price is not strictly positive.
func (s *service) historyEntry(userID int64, nameLower string, price float64, category string) *domain.PriceHistoryEntry {
	if price <= 0 {
		return nil
	}
	return &domain.PriceHistoryEntry{
		ItemNameLower: nameLower,
		Price:         price,
		Category:      category,
		UserID:        userID,
	}
}
