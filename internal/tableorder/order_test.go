package tableorder

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/cafe-companion/internal/cart"
	"github.com/angelmondragon/cafe-companion/internal/catalog"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/angelmondragon/cafe-companion/pkg/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingScanner struct{}

func (failingScanner) Scan(context.Context) (string, error) {
	return "", errors.New("camera unavailable")
}

type flakyCart struct {
	*cart.Store
	failOn string
}

func (f *flakyCart) AddItem(item catalog.MenuItem, quantity int, customizations map[string]string, note string) (cart.Line, error) {
	if item.ID == f.failOn {
		return cart.Line{}, errors.New("boom")
	}
	return f.Store.AddItem(item, quantity, customizations, note)
}

func menuItem(t *testing.T, id string) catalog.MenuItem {
	t.Helper()
	item, err := catalog.Default().Get(id)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	gen, err := ids.NewGenerator(3)
	require.NoError(t, err)
	return NewOrder(MockScanner{}, gen, nil)
}

func TestScanRemembersTable(t *testing.T) {
	order := newTestOrder(t)
	_, ok := order.Table()
	assert.False(t, ok)

	table, err := order.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12", table)

	got, ok := order.Table()
	assert.True(t, ok)
	assert.Equal(t, "12", got)
}

func TestScanFailure(t *testing.T) {
	order := NewOrder(failingScanner{}, nil, nil)
	_, err := order.Scan(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}

func TestAddMergesByItemAndDecrementRemoves(t *testing.T) {
	order := newTestOrder(t)
	latte := menuItem(t, "latte")
	mocha := menuItem(t, "mocha")

	order.Add(latte)
	entry := order.Add(latte)
	order.Add(mocha)
	assert.Equal(t, 2, entry.Quantity)
	assert.Equal(t, 3, order.Count())
	assert.Equal(t, "12.50", order.Total().StringFixed(2))

	assert.True(t, order.Decrement("latte"))
	assert.True(t, order.Decrement("mocha"))
	assert.False(t, order.Decrement("mocha"))

	view := order.View()
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "latte", view.Entries[0].Item.ID)
	assert.Equal(t, 1, view.Count)
}

func TestPlaceRequiresTableAndEntries(t *testing.T) {
	order := newTestOrder(t)
	store := cart.NewStore()

	order.Add(menuItem(t, "latte"))
	_, err := order.Place(store, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	order = newTestOrder(t)
	_, err = order.Scan(context.Background())
	require.NoError(t, err)
	_, err = order.Place(store, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
	assert.Empty(t, store.Lines())
}

func TestPlacePushesEntriesIntoCart(t *testing.T) {
	order := newTestOrder(t)
	store := cart.NewStore()
	_, err := order.Scan(context.Background())
	require.NoError(t, err)

	order.Add(menuItem(t, "latte"))
	order.Add(menuItem(t, "latte"))
	order.Add(menuItem(t, "espresso"))

	placement, err := order.Place(store, "  no sugar  ")
	require.NoError(t, err)
	assert.NotEmpty(t, placement.OrderNumber)
	assert.Equal(t, "12", placement.Table)
	assert.Equal(t, "Table #12 - no sugar", placement.Note)
	assert.Equal(t, "10.50", placement.Total.StringFixed(2))
	assert.Equal(t, []string{"latte", "espresso"}, placement.ItemIDs())

	lines := store.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Table #12 - no sugar", lines[0].Note)
	assert.Equal(t, "10.50", store.Total().StringFixed(2))

	assert.Zero(t, order.Count())
	_, ok := order.Table()
	assert.False(t, ok)
}

func TestPlaceRollsBackOnFailure(t *testing.T) {
	order := newTestOrder(t)
	store := &flakyCart{Store: cart.NewStore(), failOn: "mocha"}
	_, err := order.Scan(context.Background())
	require.NoError(t, err)
	order.Add(menuItem(t, "latte"))
	order.Add(menuItem(t, "mocha"))

	_, err = order.Place(store, "")
	require.Error(t, err)
	assert.Empty(t, store.Lines())
	assert.Equal(t, 2, order.Count())
}

func TestTableNote(t *testing.T) {
	assert.Equal(t, "Table #7", TableNote("7", ""))
	assert.Equal(t, "Table #7", TableNote("7", "   "))
	assert.Equal(t, "Table #7 - extra hot", TableNote("7", "extra hot"))
}
