package tableorder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/angelmondragon/cafe-companion/internal/cart"
	"github.com/angelmondragon/cafe-companion/internal/catalog"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/angelmondragon/cafe-companion/pkg/ids"
	"github.com/angelmondragon/cafe-companion/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Scanner reads the table number off the QR code on the table.
type Scanner interface {
	Scan(ctx context.Context) (string, error)
}

// MockScanner always finds the same table.
type MockScanner struct {
	Table string
}

func (m MockScanner) Scan(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Table == "" {
		return "12", nil
	}
	return m.Table, nil
}

// Cart is the part of the shopping cart a table order is pushed into.
type Cart interface {
	AddItem(item catalog.MenuItem, quantity int, customizations map[string]string, note string) (cart.Line, error)
	RemoveItem(lineID string)
}

// Entry is one drink on the table order.
type Entry struct {
	Item     catalog.MenuItem `json:"item"`
	Quantity int              `json:"quantity"`
}

// Subtotal is price × quantity.
func (e Entry) Subtotal() decimal.Decimal {
	return e.Item.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// View is a read-only copy of the order.
type View struct {
	Table   string          `json:"table,omitempty"`
	Entries []Entry         `json:"entries"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
}

// Placement describes an order that was sent to the cart.
type Placement struct {
	OrderNumber string          `json:"order_number"`
	Table       string          `json:"table"`
	Note        string          `json:"note"`
	Lines       []cart.Line     `json:"lines"`
	Total       decimal.Decimal `json:"total"`
}

// ItemIDs lists the distinct menu items in the placement.
func (p Placement) ItemIDs() []string {
	seen := make(map[string]struct{}, len(p.Lines))
	out := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		if _, ok := seen[l.Item.ID]; ok {
			continue
		}
		seen[l.Item.ID] = struct{}{}
		out = append(out, l.Item.ID)
	}
	return out
}

// Order is a scan-at-table order that lives beside the cart until placed.
// Unlike the cart it merges repeated adds of the same item.
type Order struct {
	mu      sync.Mutex
	table   string
	entries []Entry

	scanner Scanner
	ids     *ids.Generator
	metrics *metrics.Storefront
}

// NewOrder builds an empty table order.
func NewOrder(scanner Scanner, gen *ids.Generator, m *metrics.Storefront) *Order {
	if scanner == nil {
		scanner = MockScanner{}
	}
	return &Order{scanner: scanner, ids: gen, metrics: m}
}

// Scan asks the scanner for the table number and remembers it.
func (o *Order) Scan(ctx context.Context) (string, error) {
	table, err := o.scanner.Scan(ctx)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "table scan failed")
	}
	table = strings.TrimSpace(table)
	if table == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "table scan returned no table")
	}
	o.mu.Lock()
	o.table = table
	o.mu.Unlock()
	return table, nil
}

// Table returns the scanned table number, if any.
func (o *Order) Table() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.table, o.table != ""
}

// Add puts one of item on the order.
func (o *Order) Add(item catalog.MenuItem) Entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.entries {
		if o.entries[i].Item.ID == item.ID {
			o.entries[i].Quantity++
			return o.entries[i]
		}
	}
	entry := Entry{Item: item.Clone(), Quantity: 1}
	o.entries = append(o.entries, entry)
	return entry
}

// Decrement takes one of the item off the order, dropping the entry at zero.
// It reports whether the item was on the order.
func (o *Order) Decrement(itemID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.entries {
		if o.entries[i].Item.ID != itemID {
			continue
		}
		if o.entries[i].Quantity > 1 {
			o.entries[i].Quantity--
		} else {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
		}
		return true
	}
	return false
}

func (o *Order) Total() decimal.Decimal {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.totalLocked()
}

func (o *Order) Count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.countLocked()
}

// View returns a copy of the order.
func (o *Order) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	entries := make([]Entry, 0, len(o.entries))
	for _, e := range o.entries {
		entries = append(entries, Entry{Item: e.Item.Clone(), Quantity: e.Quantity})
	}
	return View{
		Table:   o.table,
		Entries: entries,
		Total:   o.totalLocked(),
		Count:   o.countLocked(),
	}
}

// Place adds every entry to c tagged with the table note, then resets the
// order. Either all entries land in the cart or none do.
func (o *Order) Place(c Cart, instructions string) (Placement, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.table == "" {
		return Placement{}, pkgerrors.New(pkgerrors.CodeStateConflict, "scan your table before placing an order")
	}
	if len(o.entries) == 0 {
		return Placement{}, pkgerrors.New(pkgerrors.CodeStateConflict, "table order is empty")
	}

	note := TableNote(o.table, instructions)
	lines := make([]cart.Line, 0, len(o.entries))
	for _, e := range o.entries {
		line, err := c.AddItem(e.Item, e.Quantity, nil, note)
		if err != nil {
			for _, added := range lines {
				c.RemoveItem(added.ID)
			}
			return Placement{}, err
		}
		lines = append(lines, line)
	}

	placement := Placement{
		OrderNumber: o.orderNumber(),
		Table:       o.table,
		Note:        note,
		Lines:       lines,
		Total:       o.totalLocked(),
	}
	o.entries = nil
	o.table = ""
	o.metrics.IncTableOrder()
	return placement, nil
}

// TableNote is the special instruction attached to every placed line.
func TableNote(table, instructions string) string {
	note := fmt.Sprintf("Table #%s", table)
	if extra := strings.TrimSpace(instructions); extra != "" {
		note += " - " + extra
	}
	return note
}

func (o *Order) orderNumber() string {
	if o.ids == nil {
		return ""
	}
	return strconv.FormatInt(o.ids.Next(), 10)
}

func (o *Order) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, e := range o.entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

func (o *Order) countLocked() int {
	count := 0
	for _, e := range o.entries {
		count += e.Quantity
	}
	return count
}
