package infrastructure

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/essalvador31/ShoppingListManager/internal/shopping/domain"
)

// In-memory repositories mirroring the SQL semantics, used by the
// application-layer tests.

type MockPriceHistoryRepository struct {
	Entries []domain.PriceHistoryEntry
	nextID  int64
}

func (m *MockPriceHistoryRepository) FindLatest(_ context.Context, userID int64, itemNameLower string) (*domain.PriceHistoryEntry, error) {
	for i := len(m.Entries) - 1; i >= 0; i-- {
		e := m.Entries[i]
		if e.UserID == userID && e.ItemNameLower == itemNameLower {
			return &e, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockPriceHistoryRepository) append(entry *domain.PriceHistoryEntry) {
	m.nextID++
	entry.ID = m.nextID
	m.Entries = append(m.Entries, *entry)
}

type MockListRepository struct {
	Lists []domain.ShoppingList

	// FinalizeTotal stands in for the SQL subquery that snapshots the
	// item total; OnDelete emulates the FK cascade onto items.
	FinalizeTotal func(listID int64) float64
	OnDelete      func(listID int64)

	nextID int64
}

func (m *MockListRepository) FindActiveByUser(_ context.Context, userID int64) (*domain.ShoppingList, error) {
	for i := range m.Lists {
		if m.Lists[i].UserID == userID && m.Lists[i].IsActive {
			list := m.Lists[i]
			return &list, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockListRepository) CreateActive(ctx context.Context, userID int64, name string) error {
	// Emulates ON CONFLICT DO NOTHING against the partial unique index.
	if _, err := m.FindActiveByUser(ctx, userID); err == nil {
		return nil
	}
	m.nextID++
	m.Lists = append(m.Lists, domain.ShoppingList{
		ID:        m.nextID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
		UserID:    userID,
	})
	return nil
}

func (m *MockListRepository) FindByID(_ context.Context, listID int64) (*domain.ShoppingList, error) {
	for i := range m.Lists {
		if m.Lists[i].ID == listID {
			list := m.Lists[i]
			return &list, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockListRepository) FindByIDAndUser(_ context.Context, listID, userID int64) (*domain.ShoppingList, error) {
	for i := range m.Lists {
		if m.Lists[i].ID == listID && m.Lists[i].UserID == userID {
			list := m.Lists[i]
			return &list, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockListRepository) Rename(_ context.Context, listID, userID int64, name string) (int64, error) {
	for i := range m.Lists {
		if m.Lists[i].ID == listID && m.Lists[i].UserID == userID {
			m.Lists[i].Name = name
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockListRepository) Finalize(_ context.Context, listID, userID int64) (int64, error) {
	for i := range m.Lists {
		if m.Lists[i].ID == listID && m.Lists[i].UserID == userID && m.Lists[i].IsActive {
			m.Lists[i].IsActive = false
			if m.FinalizeTotal != nil {
				m.Lists[i].TotalPrice = m.FinalizeTotal(listID)
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockListRepository) DeleteFinalized(_ context.Context, listID, userID int64) (int64, error) {
	for i := range m.Lists {
		if m.Lists[i].ID == listID && m.Lists[i].UserID == userID && !m.Lists[i].IsActive {
			m.Lists = append(m.Lists[:i], m.Lists[i+1:]...)
			if m.OnDelete != nil {
				m.OnDelete(listID)
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockListRepository) FindFinalizedByUser(_ context.Context, userID int64) ([]domain.FinalizedListView, error) {
	var views []domain.FinalizedListView
	for _, list := range m.Lists {
		if list.UserID == userID && !list.IsActive {
			views = append(views, domain.FinalizedListView{
				ID:         list.ID,
				Name:       list.Name,
				CreatedAt:  list.CreatedAt,
				TotalPrice: list.TotalPrice,
			})
		}
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].ID > views[j].ID
		}
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

type MockItemRepository struct {
	Items   []domain.ShoppingListItem
	History *MockPriceHistoryRepository
	nextID  int64
}

func (m *MockItemRepository) FindByID(_ context.Context, itemID int64) (*domain.ShoppingListItem, error) {
	for i := range m.Items {
		if m.Items[i].ID == itemID {
			item := m.Items[i]
			return &item, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockItemRepository) FindByList(_ context.Context, listID int64) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	for _, item := range m.Items {
		if item.ListID == listID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (m *MockItemRepository) InsertWithHistory(_ context.Context, item *domain.ShoppingListItem, entry *domain.PriceHistoryEntry) error {
	m.nextID++
	item.ID = m.nextID
	m.Items = append(m.Items, *item)
	if entry != nil && m.History != nil {
		m.History.append(entry)
	}
	return nil
}

func (m *MockItemRepository) UpdateWithHistory(_ context.Context, item *domain.ShoppingListItem, entry *domain.PriceHistoryEntry) error {
	for i := range m.Items {
		if m.Items[i].ID == item.ID {
			m.Items[i].Name = item.Name
			m.Items[i].Quantity = item.Quantity
			m.Items[i].Price = item.Price
			m.Items[i].Category = item.Category
			if entry != nil && m.History != nil {
				m.History.append(entry)
			}
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockItemRepository) SetCompleted(_ context.Context, itemID int64, completed bool) (int64, error) {
	for i := range m.Items {
		if m.Items[i].ID == itemID {
			m.Items[i].Completed = completed
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockItemRepository) Delete(_ context.Context, itemID int64) (int64, error) {
	for i := range m.Items {
		if m.Items[i].ID == itemID {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
