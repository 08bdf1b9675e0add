package service

import (
	"sort"
	"time"

	"stockroom/internal/models"

	"github.com/shopspring/decimal"
)

// CanFulfill reports whether every requirement is covered by the stock
// snapshot. Unknown item names count as zero stock.
func CanFulfill(requirements map[string]int, stock map[string]int) bool {
	for name, qty := range requirements {
		if stock[name] < qty {
			return false
		}
	}
	return true
}

// Shortfall returns the alphabetically first requirement the snapshot
// cannot cover. ok is false when everything is covered.
func Shortfall(requirements map[string]int, stock map[string]int) (models.Requirement, bool) {
	names := make([]string, 0, len(requirements))
	for name := range requirements {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if stock[name] < requirements[name] {
			return models.Requirement{ItemName: name, Quantity: requirements[name]}, true
		}
	}
	return models.Requirement{}, false
}

// TotalSales sums the price of completed orders. Orders in any other
// status contribute nothing.
func TotalSales(orders []models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status == models.OrderStatusCompleted {
			total = total.Add(o.Price)
		}
	}
	return total
}

// AverageOrderValue is total sales divided by the number of completed
// orders, zero when there are none
func AverageOrderValue(orders []models.Order) decimal.Decimal {
	var count int64
	for _, o := range orders {
		if o.Status == models.OrderStatusCompleted {
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return TotalSales(orders).Div(decimal.NewFromInt(count)).Round(2)
}

// InventoryValuation sums quantity times unit price over the items
func InventoryValuation(items []models.InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineValue())
	}
	return total
}

// SellerStat is an aggregated unit count for one inventory item
type SellerStat struct {
	ItemName string
	Units    int
}

// TopSellers ranks items by units required across completed orders,
// descending, ties broken by name. At most n entries are returned.
func TopSellers(orders []models.Order, n int) []SellerStat {
	if n < 1 {
		return nil
	}

	units := make(map[string]int)
	for _, o := range orders {
		if o.Status != models.OrderStatusCompleted {
			continue
		}
		for name, qty := range o.Requirements {
			units[name] += qty
		}
	}

	stats := make([]SellerStat, 0, len(units))
	for name, u := range units {
		stats = append(stats, SellerStat{ItemName: name, Units: u})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Units != stats[j].Units {
			return stats[i].Units > stats[j].Units
		}
		return stats[i].ItemName < stats[j].ItemName
	})

	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// SlowMovers returns the items with no completed sale after the cutoff.
// Items that have never sold are included; item order is preserved.
func SlowMovers(items []models.InventoryItem, orders []models.Order, since time.Time) []models.InventoryItem {
	sold := make(map[string]bool)
	for _, o := range orders {
		if o.Status != models.OrderStatusCompleted || !o.CompletedAt.After(since) {
			continue
		}
		for name := range o.Requirements {
			sold[name] = true
		}
	}

	var slow []models.InventoryItem
	for _, item := range items {
		if !sold[item.Name] {
			slow = append(slow, item)
		}
	}
	return slow
}
