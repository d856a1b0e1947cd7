package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/angelmondragon/cafe-companion/internal/catalog"
	"github.com/angelmondragon/cafe-companion/pkg/enums"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when a line would be created with a
// quantity below one.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// Line is one entry in the cart. Two lines for the same menu item with the
// same customisations are still distinct lines.
type Line struct {
	ID             string            `json:"id"`
	Item           catalog.MenuItem  `json:"item"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations,omitempty"`
	Note           string            `json:"note,omitempty"`
}

// Subtotal is the unit price times the quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) clone() Line {
	out := l
	out.Item = l.Item.Clone()
	if l.Customizations != nil {
		out.Customizations = make(map[string]string, len(l.Customizations))
		for k, v := range l.Customizations {
			out.Customizations[k] = v
		}
	}
	return out
}

// Snapshot is a consistent read of the cart.
type Snapshot struct {
	Lines     []Line          `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// Event is delivered to listeners after every effective mutation.
type Event struct {
	Type     enums.CartEventType
	LineID   string
	Snapshot Snapshot
}

// Listener receives cart events. It runs synchronously on the mutating
// goroutine, after the store lock is released, so it may read the store.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Option customises a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid line id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Store is the single source of truth for one session's in-progress order.
// Lines keep insertion order.
type Store struct {
	mu        sync.Mutex
	lines     []Line
	newID     func() string
	listeners []subscription
	nextSub   int
}

// NewStore builds an empty cart.
func NewStore(opts ...Option) *Store {
	s := &Store{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem appends a new line. It never merges into an existing line, even
// when item and customisations match; callers that want to bump a line's
// quantity use UpdateQuantity with that line's id.
func (s *Store) AddItem(item catalog.MenuItem, quantity int, customizations map[string]string, note string) (Line, error) {
	if quantity <= 0 {
		return Line{}, pkgerrors.Wrap(pkgerrors.CodeInvalidQty, ErrInvalidQuantity, fmt.Sprintf("quantity %d is not allowed", quantity)).
			WithDetails(map[string]any{"quantity": quantity})
	}
	if err := catalog.ValidateCustomizations(item, customizations); err != nil {
		return Line{}, err
	}

	line := Line{
		Item:     item,
		Quantity: quantity,
		Note:     note,
	}
	if len(customizations) > 0 {
		line.Customizations = customizations
	}
	line = line.clone()

	s.mu.Lock()
	line.ID = s.newID()
	if s.indexOf(line.ID) >= 0 {
		s.mu.Unlock()
		return Line{}, pkgerrors.New(pkgerrors.CodeInternal, "line id collision")
	}
	s.lines = append(s.lines, line)
	evt, listeners := s.eventLocked(enums.CartEventAdded, line.ID)
	s.mu.Unlock()

	notify(listeners, evt)
	return line.clone(), nil
}

// RemoveItem deletes the line with the given id. Unknown ids are ignored.
func (s *Store) RemoveItem(lineID string) {
	s.mu.Lock()
	idx := s.indexOf(lineID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	evt, listeners := s.eventLocked(enums.CartEventRemoved, lineID)
	s.mu.Unlock()

	notify(listeners, evt)
}

// UpdateQuantity replaces a line's quantity. Zero or below removes the line.
// Unknown ids are ignored.
func (s *Store) UpdateQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(lineID)
		return
	}

	s.mu.Lock()
	idx := s.indexOf(lineID)
	if idx < 0 || s.lines[idx].Quantity == quantity {
		s.mu.Unlock()
		return
	}
	s.lines[idx].Quantity = quantity
	evt, listeners := s.eventLocked(enums.CartEventQuantityUpdated, lineID)
	s.mu.Unlock()

	notify(listeners, evt)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	if len(s.lines) == 0 {
		s.mu.Unlock()
		return
	}
	s.lines = nil
	evt, listeners := s.eventLocked(enums.CartEventCleared, "")
	s.mu.Unlock()

	notify(listeners, evt)
}

// Total returns the sum of price × quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// ItemCount returns the sum of quantities, used for the badge counter.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked()
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linesLocked()
}

// Line returns a single line by id.
func (s *Store) Line(lineID string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(lineID)
	if idx < 0 {
		return Line{}, false
	}
	return s.lines[idx].clone(), true
}

// Snapshot returns lines, total and item count read under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a listener and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) indexOf(lineID string) int {
	for i, line := range s.lines {
		if line.ID == lineID {
			return i
		}
	}
	return -1
}

func (s *Store) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (s *Store) countLocked() int {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *Store) linesLocked() []Line {
	out := make([]Line, 0, len(s.lines))
	for _, line := range s.lines {
		out = append(out, line.clone())
	}
	return out
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Lines:     s.linesLocked(),
		Total:     s.totalLocked(),
		ItemCount: s.countLocked(),
	}
}

func (s *Store) eventLocked(kind enums.CartEventType, lineID string) (Event, []Listener) {
	if len(s.listeners) == 0 {
		return Event{}, nil
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, sub := range s.listeners {
		listeners = append(listeners, sub.fn)
	}
	return Event{Type: kind, LineID: lineID, Snapshot: s.snapshotLocked()}, listeners
}

func notify(listeners []Listener, evt Event) {
	for _, fn := range listeners {
		fn(evt)
	}
}
