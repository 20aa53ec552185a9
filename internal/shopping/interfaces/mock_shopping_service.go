package interfaces

import (
	"context"

	"github.com/essalvador31/ShoppingListManager/internal/shopping/domain"
)

// MockShoppingService satisfies both handler interfaces with canned values.
// A non-nil Err is returned from every method.
type MockShoppingService struct {
	ActiveList      *domain.ShoppingList
	List            *domain.ShoppingList
	Finalized       []domain.FinalizedListView
	ItemsView       *domain.ListItemsView
	Item            *domain.ItemView
	Suggestion      *domain.PriceSuggestion
	ToggleID        int64
	ToggleCompleted bool
	Err             error

	Calls []string
}

func (m *MockShoppingService) record(name string) { m.Calls = append(m.Calls, name) }

func (m *MockShoppingService) GetOrCreateActiveList(_ context.Context, _ int64) (*domain.ShoppingList, error) {
	m.record("GetOrCreateActiveList")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ActiveList, nil
}

func (m *MockShoppingService) GetFinalizedLists(_ context.Context, _ int64) ([]domain.FinalizedListView, error) {
	m.record("GetFinalizedLists")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Finalized, nil
}

func (m *MockShoppingService) RenameList(_ context.Context, _, _ int64, _ string) (*domain.ShoppingList, error) {
	m.record("RenameList")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.List, nil
}

func (m *MockShoppingService) FinalizeList(_ context.Context, _, _ int64) error {
	m.record("FinalizeList")
	return m.Err
}

func (m *MockShoppingService) DeleteList(_ context.Context, _, _ int64) error {
	m.record("DeleteList")
	return m.Err
}

func (m *MockShoppingService) ListItems(_ context.Context, _, _ int64) (*domain.ListItemsView, error) {
	m.record("ListItems")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ItemsView, nil
}

func (m *MockShoppingService) AddItem(_ context.Context, _, _ int64, _ string, _ int, _ float64, _ string) (*domain.ItemView, error) {
	m.record("AddItem")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Item, nil
}

func (m *MockShoppingService) UpdateItem(_ context.Context, _, _ int64, _ string, _ int, _ float64, _ string) error {
	m.record("UpdateItem")
	return m.Err
}

func (m *MockShoppingService) ToggleItem(_ context.Context, _, _ int64) (int64, bool, error) {
	m.record("ToggleItem")
	if m.Err != nil {
		return 0, false, m.Err
	}
	return m.ToggleID, m.ToggleCompleted, nil
}

func (m *MockShoppingService) DeleteItem(_ context.Context, _, _ int64) error {
	m.record("DeleteItem")
	return m.Err
}

func (m *MockShoppingService) SuggestPrice(_ context.Context, _ int64, _ string) (*domain.PriceSuggestion, error) {
	m.record("SuggestPrice")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Suggestion, nil
}
