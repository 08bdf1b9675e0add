package models

import (
	"fmt"
	"time"
)

// Alert kinds
const (
	AlertLowStock       = "LOW_STOCK"
	AlertOrderCreated   = "ORDER_CREATED"
	AlertOrderCompleted = "ORDER_COMPLETED"
	AlertCounterSale    = "COUNTER_SALE"
)

// Alert is an in-process notification about a noteworthy state change
type Alert struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Ref       string    `json:"ref"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLowStockAlert flags an item that fell to or under its minimum stock threshold
func NewLowStockAlert(item InventoryItem) Alert {
	return Alert{
		Kind:      AlertLowStock,
		Message:   fmt.Sprintf("%s is low on stock: %d left, minimum is %d", item.Name, item.Quantity, item.MinStockAlert),
		Ref:       item.Name,
		CreatedAt: time.Now(),
	}
}

// NewOrderAlert records an order lifecycle change
func NewOrderAlert(kind string, o Order) Alert {
	var msg string
	switch kind {
	case AlertOrderCreated:
		msg = fmt.Sprintf("Order %q opened", o.Title)
	case AlertOrderCompleted:
		msg = fmt.Sprintf("Order %q completed", o.Title)
	case AlertCounterSale:
		msg = fmt.Sprintf("Counter sale %q processed", o.Title)
	default:
		msg = fmt.Sprintf("Order %q updated", o.Title)
	}

	return Alert{
		Kind:      kind,
		Message:   msg,
		Ref:       o.ID,
		CreatedAt: time.Now(),
	}
}
