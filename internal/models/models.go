package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked line-item, keyed by its name
type InventoryItem struct {
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	MinStockAlert int             `json:"min_stock_alert"`
	Supplier      string          `json:"supplier,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LowStock reports whether the item sits at or under its alert threshold.
// A threshold of zero disables the alert.
func (i InventoryItem) LowStock() bool {
	return i.MinStockAlert > 0 && i.Quantity <= i.MinStockAlert
}

// LineValue is quantity times unit price
func (i InventoryItem) LineValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order tracks a customer order through its lifecycle
type Order struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Requirements map[string]int  `json:"requirements"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  time.Time       `json:"completed_at,omitempty"`
	CancelledAt  time.Time       `json:"cancelled_at,omitempty"`
}

// Requirement is one named line of an order's requirements map
type Requirement struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// SortedRequirements returns the requirements as a name-sorted slice for display
func (o Order) SortedRequirements() []Requirement {
	reqs := make([]Requirement, 0, len(o.Requirements))
	for name, qty := range o.Requirements {
		reqs = append(reqs, Requirement{ItemName: name, Quantity: qty})
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].ItemName < reqs[j].ItemName })
	return reqs
}

// Supplier is an entry in the supplier directory
type Supplier struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockMovement is one entry in the append-only stock journal
type StockMovement struct {
	ID             string    `json:"id"`
	ItemName       string    `json:"item_name"`
	Type           string    `json:"type"`
	QuantityChange int       `json:"quantity_change"`
	Details        string    `json:"details,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Draft is an in-progress order, kept per browser session
type Draft struct {
	ID        string      `json:"id"`
	Lines     []DraftLine `json:"lines"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// DraftLine is one item row of a draft, with the unit price captured at
// the time the line was added
type DraftLine struct {
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Total is the line value at the captured unit price
func (l DraftLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total sums the draft's line values
func (d Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range d.Lines {
		total = total.Add(line.Total())
	}
	return total
}

// Order statuses
const (
	OrderStatusOpen      = "OPEN"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Quantity modes for inventory upserts
const (
	QuantitySet = "SET"
	QuantityAdd = "ADD"
)

// Stock movement types
const (
	MovementInitialStock     = "INITIAL_STOCK"
	MovementManualAdjustment = "MANUAL_ADJUSTMENT"
	MovementOrderCompleted   = "ORDER_COMPLETED"
	MovementCounterSale      = "COUNTER_SALE"
)
