package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"stockroom/internal/models"
)

// OrderStore is the in-memory order ledger. Orders are cloned on the way in
// and out so callers can never mutate the ledger through a shared
// requirements map.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewOrderStore creates an empty order ledger
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]models.Order)}
}

// Append adds a new order to the ledger
func (s *OrderStore) Append(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = cloneOrder(o)
}

// Get returns the order with the given id
func (s *OrderStore) Get(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, fmt.Errorf("%w: order %s", models.ErrNotFound, id)
	}
	return cloneOrder(o), nil
}

// Transition moves an order from one status to another, stamping the
// matching timestamp. Fails when the order is absent or not in the
// expected status.
func (s *OrderStore) Transition(id, from, to string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, fmt.Errorf("%w: order %s", models.ErrNotFound, id)
	}
	if o.Status != from {
		return models.Order{}, fmt.Errorf("%w: order %s is %s", models.ErrInvalidTransition, id, o.Status)
	}

	now := time.Now()
	o.Status = to
	switch to {
	case models.OrderStatusCompleted:
		o.CompletedAt = now
	case models.OrderStatusCancelled:
		o.CancelledAt = now
	}
	s.orders[id] = o

	return cloneOrder(o), nil
}

// ListOpen returns open orders, oldest first
func (s *OrderStore) ListOpen() []models.Order {
	return s.listByStatus(models.OrderStatusOpen, func(a, b models.Order) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// ListCompleted returns completed orders, most recently completed first
func (s *OrderStore) ListCompleted() []models.Order {
	return s.listByStatus(models.OrderStatusCompleted, func(a, b models.Order) bool {
		return a.CompletedAt.After(b.CompletedAt)
	})
}

// ListCancelled returns cancelled orders, most recently cancelled first
func (s *OrderStore) ListCancelled() []models.Order {
	return s.listByStatus(models.OrderStatusCancelled, func(a, b models.Order) bool {
		return a.CancelledAt.After(b.CancelledAt)
	})
}

func (s *OrderStore) listByStatus(status string, less func(a, b models.Order) bool) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for _, o := range s.orders {
		if o.Status == status {
			out = append(out, cloneOrder(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func cloneOrder(o models.Order) models.Order {
	reqs := make(map[string]int, len(o.Requirements))
	for name, qty := range o.Requirements {
		reqs[name] = qty
	}
	o.Requirements = reqs
	return o
}
