package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/essalvador31/ShoppingListManager/internal/shopping/domain"
	"github.com/essalvador31/ShoppingListManager/internal/shopping/infrastructure"
)

type fixture struct {
	lists   *infrastructure.MockListRepository
	items   *infrastructure.MockItemRepository
	history *infrastructure.MockPriceHistoryRepository
	service Service
}

func newFixture() *fixture {
	history := &infrastructure.MockPriceHistoryRepository{}
	items := &infrastructure.MockItemRepository{History: history}
	lists := &infrastructure.MockListRepository{}

	lists.FinalizeTotal = func(listID int64) float64 {
		var total float64
		for _, item := range items.Items {
			if item.ListID == listID {
				total += float64(item.Quantity) * item.Price
			}
		}
		return total
	}
	lists.OnDelete = func(listID int64) {
		kept := items.Items[:0]
		for _, item := range items.Items {
			if item.ListID != listID {
				kept = append(kept, item)
			}
		}
		items.Items = kept
	}

	return &fixture{
		lists:   lists,
		items:   items,
		history: history,
		service: NewListService(lists, items, history),
	}
}

func TestGetOrCreateActiveList_IsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.GetOrCreateActiveList(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultListName, first.Name)
	assert.True(t, first.IsActive)

	second, err := f.service.GetOrCreateActiveList(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.lists.Lists, 1)
}

func TestGetOrCreateActiveList_PerUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice, err := f.service.GetOrCreateActiveList(ctx, 1)
	assert.NoError(t, err)
	bob, err := f.service.GetOrCreateActiveList(ctx, 2)
	assert.NoError(t, err)
	assert.NotEqual(t, alice.ID, bob.ID)
}

func TestAddItem_PriceFallbackFromHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, err := f.service.GetOrCreateActiveList(ctx, 1)
	assert.NoError(t, err)

	// No history yet: a zero price stays zero and nothing is logged.
	first, err := f.service.AddItem(ctx, 1, list.ID, "Milk", 2, 0, "")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, first.Price)
	assert.Empty(t, f.history.Entries)

	// A positive price is recorded under the lowercase name.
	second, err := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 3.50, "")
	assert.NoError(t, err)
	assert.Equal(t, 3.50, second.Price)
	assert.Len(t, f.history.Entries, 1)
	assert.Equal(t, "milk", f.history.Entries[0].ItemNameLower)

	// Zero price now resolves from history, which grows the log again.
	third, err := f.service.AddItem(ctx, 1, list.ID, "Milk", 2, 0, "")
	assert.NoError(t, err)
	assert.Equal(t, 3.50, third.Price)
	assert.Len(t, f.history.Entries, 2)
}

func TestAddItem_CategoryDefaultsButNeverFromHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)

	_, err := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 3.50, "Dairy")
	assert.NoError(t, err)

	// The fallback fills the price only; the category falls back to the
	// default, not to the history entry's "Dairy".
	item, err := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 0, "")
	assert.NoError(t, err)
	assert.Equal(t, 3.50, item.Price)
	assert.Equal(t, domain.DefaultCategory, item.Category)
}

func TestAddItem_FinalizedListRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	assert.NoError(t, f.service.FinalizeList(ctx, 1, list.ID))

	_, err := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 1, "")
	assert.ErrorIs(t, err, ErrListNotActive)
}

func TestAddItem_ForeignListNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)

	_, err := f.service.AddItem(ctx, 2, list.ID, "Milk", 1, 1, "")
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestFinalizeList_SnapshotsTotal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	_, err := f.service.AddItem(ctx, 1, list.ID, "Milk", 2, 3.50, "Dairy")
	assert.NoError(t, err)
	_, err = f.service.AddItem(ctx, 1, list.ID, "Bread", 1, 2.25, "")
	assert.NoError(t, err)

	assert.NoError(t, f.service.FinalizeList(ctx, 1, list.ID))

	finalized, err := f.service.GetFinalizedLists(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, finalized, 1)
	assert.InDelta(t, 2*3.50+2.25, finalized[0].TotalPrice, 1e-9)

	// Finalizing twice is rejected as a wrong-state operation.
	assert.ErrorIs(t, f.service.FinalizeList(ctx, 1, list.ID), ErrListNotActive)
}

func TestFinalizeList_SnapshotSurvivesLaterEdits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	item, _ := f.service.AddItem(ctx, 1, list.ID, "Milk", 2, 3.50, "Dairy")
	assert.NoError(t, f.service.FinalizeList(ctx, 1, list.ID))

	// Items of finalized lists stay editable; the snapshot does not move.
	assert.NoError(t, f.service.UpdateItem(ctx, 1, item.ID, "Milk", 10, 9.99, "Dairy"))

	finalized, _ := f.service.GetFinalizedLists(ctx, 1)
	assert.InDelta(t, 7.0, finalized[0].TotalPrice, 1e-9)
}

func TestListItems_GroupingAndTotals(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	_, err := f.service.AddItem(ctx, 1, list.ID, "Yogurt", 1, 2.00, "Dairy")
	assert.NoError(t, err)
	milk, err := f.service.AddItem(ctx, 1, list.ID, "Milk", 2, 3.50, "Dairy")
	assert.NoError(t, err)
	_, err = f.service.AddItem(ctx, 1, list.ID, "Soap", 3, 1.00, "")
	assert.NoError(t, err)

	// Mark the milk purchased.
	_, completed, err := f.service.ToggleItem(ctx, 1, milk.ID)
	assert.NoError(t, err)
	assert.True(t, completed)

	view, err := f.service.ListItems(ctx, 1, list.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultListName, view.ListName)
	assert.Len(t, view.GroupedItems, 2)

	dairy := view.GroupedItems["Dairy"]
	assert.Len(t, dairy, 2)
	assert.Equal(t, "Milk", dairy[0].Name)
	assert.Equal(t, "Yogurt", dairy[1].Name)

	other := view.GroupedItems[domain.DefaultCategory]
	assert.Len(t, other, 1)
	assert.Equal(t, "Soap", other[0].Name)

	assert.InDelta(t, 2*3.50+2.00+3*1.00, view.EstimatedTotal, 1e-9)
	assert.InDelta(t, 2*3.50, view.PurchasedTotal, 1e-9)
}

func TestUpdateItem_AppendsHistoryOnPositivePrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	item, _ := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 0, "")
	assert.Empty(t, f.history.Entries)

	assert.NoError(t, f.service.UpdateItem(ctx, 1, item.ID, "Oat Milk", 1, 4.20, "Dairy"))

	assert.Len(t, f.history.Entries, 1)
	entry := f.history.Entries[0]
	assert.Equal(t, "oat milk", entry.ItemNameLower)
	assert.Equal(t, 4.20, entry.Price)
	assert.Equal(t, "Dairy", entry.Category)
	assert.Equal(t, int64(1), entry.UserID)
}

func TestUpdateItem_ZeroPriceLeavesLogAlone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	item, _ := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 2, "")
	assert.Len(t, f.history.Entries, 1)

	assert.NoError(t, f.service.UpdateItem(ctx, 1, item.ID, "Milk", 1, 0, ""))
	assert.Len(t, f.history.Entries, 1)
}

func TestSuggestPrice_LatestEntryWins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	_, err := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 3.00, "Dairy")
	assert.NoError(t, err)
	_, err = f.service.AddItem(ctx, 1, list.ID, "MILK", 1, 3.75, "Breakfast")
	assert.NoError(t, err)

	suggestion, err := f.service.SuggestPrice(ctx, 1, "milk")
	assert.NoError(t, err)
	assert.Equal(t, 3.75, suggestion.SuggestedPrice)
	assert.Equal(t, "Breakfast", suggestion.SuggestedCategory)
}

func TestSuggestPrice_ScopedToUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	_, err := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 3.00, "")
	assert.NoError(t, err)

	_, err = f.service.SuggestPrice(ctx, 2, "milk")
	assert.ErrorIs(t, err, ErrNoPriceHistory)
}

func TestDeleteList_ActiveProtectedThenCascade(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	item, _ := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 2, "")

	assert.ErrorIs(t, f.service.DeleteList(ctx, 1, list.ID), ErrListNotFound)

	assert.NoError(t, f.service.FinalizeList(ctx, 1, list.ID))
	assert.NoError(t, f.service.DeleteList(ctx, 1, list.ID))

	_, err := f.service.ListItems(ctx, 1, list.ID)
	assert.ErrorIs(t, err, ErrListNotFound)

	assert.ErrorIs(t, f.service.DeleteItem(ctx, 1, item.ID), ErrItemNotFound)
}

func TestItemOps_CrossUserAndMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	item, _ := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 2, "")

	assert.ErrorIs(t, f.service.UpdateItem(ctx, 2, item.ID, "Milk", 1, 2, ""), ErrUnauthorizedAccess)
	_, _, err := f.service.ToggleItem(ctx, 2, item.ID)
	assert.ErrorIs(t, err, ErrUnauthorizedAccess)
	assert.ErrorIs(t, f.service.DeleteItem(ctx, 2, item.ID), ErrUnauthorizedAccess)

	assert.ErrorIs(t, f.service.UpdateItem(ctx, 1, 999, "Milk", 1, 2, ""), ErrItemNotFound)
	_, _, err = f.service.ToggleItem(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, f.service.DeleteItem(ctx, 1, 999), ErrItemNotFound)
}

func TestToggleItem_Flips(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	item, _ := f.service.AddItem(ctx, 1, list.ID, "Milk", 1, 2, "")

	id, completed, err := f.service.ToggleItem(ctx, 1, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, item.ID, id)
	assert.True(t, completed)

	_, completed, err = f.service.ToggleItem(ctx, 1, item.ID)
	assert.NoError(t, err)
	assert.False(t, completed)
}

func TestRenameList_AnyStateButOwnedOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, _ := f.service.GetOrCreateActiveList(ctx, 1)
	assert.NoError(t, f.service.FinalizeList(ctx, 1, list.ID))

	renamed, err := f.service.RenameList(ctx, 1, list.ID, "December groceries")
	assert.NoError(t, err)
	assert.Equal(t, "December groceries", renamed.Name)

	_, err = f.service.RenameList(ctx, 2, list.ID, "hijack")
	assert.ErrorIs(t, err, ErrListNotFound)
}
