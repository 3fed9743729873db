package cart

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// SlotKey is the fixed key the cart snapshot lives under in its slot.
const SlotKey = "cart_v1"

// Slot is the durable per-browser slot the cart is persisted to. One browser
// maps to one slot; two browsers never share one.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Store owns the authoritative in-session cart and keeps the slot in sync.
// Every mutation is followed by a best-effort write; persistence failures are
// logged and swallowed, the in-memory state stays authoritative. The slot is
// single-writer within one browser session; a visitor with two sessions gets
// last-write-wins with no merge.
type Store struct {
	log  logrus.FieldLogger
	slot Slot
	cart Cart
	open bool
}

// NewStore restores the cart persisted in slot. A missing, corrupt or
// non-array payload yields an empty cart; load failures never surface to the
// caller.
func NewStore(ctx context.Context, log logrus.FieldLogger, slot Slot) *Store {
	s := &Store{log: log, slot: slot}

	data, err := slot.Load(ctx)
	if err != nil {
		s.log.WithField("error", err).Debug("cart: slot unreadable, starting empty")
		return s
	}
	if len(data) == 0 {
		return s
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		s.log.WithField("error", err).Debug("cart: slot corrupt, starting empty")
		return s
	}

	for _, l := range lines {
		if l.ID == "" {
			continue
		}
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		s.cart.lines = append(s.cart.lines, l)
	}
	return s
}

// Add merges the item into the cart and makes the cart visible.
func (s *Store) Add(ctx context.Context, it Item, quantity int) {
	s.cart.Add(it, quantity)
	s.open = true
	s.persist(ctx)
}

// SetQuantity updates a line's quantity, clamped to a minimum of 1.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) {
	s.cart.SetQuantity(id, quantity)
	s.persist(ctx)
}

// Remove deletes a line entirely.
func (s *Store) Remove(ctx context.Context, id string) {
	s.cart.Remove(id)
	s.persist(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.cart.Clear()
	s.persist(ctx)
}

func (s *Store) Lines() []Line { return s.cart.Lines() }

func (s *Store) TotalQuantity() int { return s.cart.TotalQuantity() }

func (s *Store) TotalPrice() int { return s.cart.TotalPrice() }

// Open, Close and Toggle control the cart's visible presentation state. The
// flag is not part of the persisted snapshot.
func (s *Store) Open() { s.open = true }

func (s *Store) Close() { s.open = false }

func (s *Store) Toggle() { s.open = !s.open }

func (s *Store) IsOpen() bool { return s.open }

func (s *Store) persist(ctx context.Context) {
	lines := s.cart.lines
	if lines == nil {
		lines = []Line{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		s.log.WithField("error", err).Debug("cart: cannot serialize snapshot")
		return
	}

	if err := s.slot.Save(ctx, data); err != nil {
		s.log.WithField("error", err).Debug("cart: cannot persist snapshot")
	}
}
