package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryStore holds stock items and their movement journal. All methods
// are safe for concurrent use; DeductAll applies its whole requirement set
// under one write lock so stock can never be deducted partially.
type InventoryStore struct {
	mu        sync.RWMutex
	items     map[string]models.InventoryItem
	movements []models.StockMovement
}

// NewInventoryStore creates an empty inventory store
func NewInventoryStore() *InventoryStore {
	return &InventoryStore{items: make(map[string]models.InventoryItem)}
}

// UpsertParams carries one inventory create-or-update
type UpsertParams struct {
	Name          string
	Quantity      int
	Mode          string // models.QuantitySet or models.QuantityAdd
	UnitPrice     decimal.Decimal
	MinStockAlert int
	Supplier      string
	Details       string
}

// Upsert creates the item if absent, otherwise applies the quantity per
// Mode and refreshes price, threshold and supplier. The resulting quantity
// must not be negative. Quantity changes are journalled.
func (s *InventoryStore) Upsert(p UpsertParams) (models.InventoryItem, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return models.InventoryItem{}, fmt.Errorf("%w: item name is required", models.ErrValidation)
	}
	if p.UnitPrice.IsNegative() {
		return models.InventoryItem{}, fmt.Errorf("%w: unit price must not be negative", models.ErrValidation)
	}
	if p.MinStockAlert < 0 {
		return models.InventoryItem{}, fmt.Errorf("%w: minimum stock alert must not be negative", models.ErrValidation)
	}
	if p.Mode != models.QuantitySet && p.Mode != models.QuantityAdd {
		return models.InventoryItem{}, fmt.Errorf("%w: unknown quantity mode %q", models.ErrValidation, p.Mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	item, exists := s.items[name]
	if !exists {
		item = models.InventoryItem{Name: name, CreatedAt: now}
	}

	next := p.Quantity
	if p.Mode == models.QuantityAdd {
		next = item.Quantity + p.Quantity
	}
	if next < 0 {
		return models.InventoryItem{}, fmt.Errorf("%w: quantity of %s would drop to %d", models.ErrValidation, name, next)
	}

	change := next - item.Quantity
	item.Quantity = next
	item.UnitPrice = p.UnitPrice
	item.MinStockAlert = p.MinStockAlert
	item.Supplier = strings.TrimSpace(p.Supplier)
	item.UpdatedAt = now
	s.items[name] = item

	if !exists || change != 0 {
		movType := models.MovementManualAdjustment
		if !exists {
			movType = models.MovementInitialStock
		}
		s.appendMovementLocked(name, movType, change, p.Details, now)
	}

	return item, nil
}

// Get returns the item with the given name
func (s *InventoryStore) Get(name string) (models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[strings.TrimSpace(name)]
	if !ok {
		return models.InventoryItem{}, fmt.Errorf("%w: item %q", models.ErrNotFound, name)
	}
	return item, nil
}

// List returns items sorted by name, optionally filtered by a
// case-insensitive substring match
func (s *InventoryStore) List(query string) []models.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	items := make([]models.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		if q != "" && !strings.Contains(strings.ToLower(item.Name), q) {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items
}

// Snapshot returns the current stock level per item name
func (s *InventoryStore) Snapshot() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]int, len(s.items))
	for name, item := range s.items {
		snap[name] = item.Quantity
	}
	return snap
}

// DeductAll removes the required quantities in one step: either every
// requirement is covered and applied, or nothing changes. Returns the items
// that landed at or under their low-stock threshold.
func (s *InventoryStore) DeductAll(requirements map[string]int, movementType, details string) ([]models.InventoryItem, error) {
	names := make([]string, 0, len(requirements))
	for name := range requirements {
		names = append(names, name)
	}
	sort.Strings(names)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		qty := requirements[name]
		if qty <= 0 {
			return nil, fmt.Errorf("%w: quantity of %s must be positive", models.ErrValidation, name)
		}
		item, ok := s.items[name]
		if !ok {
			return nil, fmt.Errorf("%w: item %q", models.ErrNotFound, name)
		}
		if qty > item.Quantity {
			return nil, fmt.Errorf("%w: %s has %d, need %d", models.ErrInsufficientStock, name, item.Quantity, qty)
		}
	}

	now := time.Now()
	var low []models.InventoryItem
	for _, name := range names {
		item := s.items[name]
		item.Quantity -= requirements[name]
		item.UpdatedAt = now
		s.items[name] = item
		s.appendMovementLocked(name, movementType, -requirements[name], details, now)

		if item.LowStock() {
			low = append(low, item)
		}
	}
	return low, nil
}

// Movements returns the journal for one item, newest first
func (s *InventoryStore) Movements(name string) []models.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.StockMovement
	for i := len(s.movements) - 1; i >= 0; i-- {
		if s.movements[i].ItemName == name {
			out = append(out, s.movements[i])
		}
	}
	return out
}

func (s *InventoryStore) appendMovementLocked(name, movementType string, change int, details string, at time.Time) {
	s.movements = append(s.movements, models.StockMovement{
		ID:             uuid.New().String(),
		ItemName:       name,
		Type:           movementType,
		QuantityChange: change,
		Details:        details,
		CreatedAt:      at,
	})
}
