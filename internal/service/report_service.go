package service

import (
	"context"
	"time"

	"stockroom/internal/models"
	"stockroom/internal/store"

	"github.com/shopspring/decimal"
)

// Trailing sales window for the slow-mover list
const slowMoverDays = 30

// ReportService aggregates the financial and stock snapshot
type ReportService struct {
	store *store.Store
}

// NewReportService creates a new report service
func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

// FinancialReport is the aggregate view over sales and stock
type FinancialReport struct {
	TotalSales         decimal.Decimal
	CompletedOrders    int
	AverageOrderValue  decimal.Decimal
	InventoryValuation decimal.Decimal
	ItemCount          int
	OpenOrders         int
	CancelledOrders    int
	Suppliers          int
	TopSellers         []SellerStat
	SlowMovers         []models.InventoryItem
	LowStock           []models.InventoryItem
}

// Financial builds the report from current state
func (s *ReportService) Financial(ctx context.Context) FinancialReport {
	completed := s.store.Orders.ListCompleted()
	items := s.store.Inventory.List("")

	var low []models.InventoryItem
	for _, item := range items {
		if item.LowStock() {
			low = append(low, item)
		}
	}

	return FinancialReport{
		TotalSales:         TotalSales(completed),
		CompletedOrders:    len(completed),
		AverageOrderValue:  AverageOrderValue(completed),
		InventoryValuation: InventoryValuation(items),
		ItemCount:          len(items),
		OpenOrders:         len(s.store.Orders.ListOpen()),
		CancelledOrders:    len(s.store.Orders.ListCancelled()),
		Suppliers:          s.store.Suppliers.Count(),
		TopSellers:         TopSellers(completed, 5),
		SlowMovers:         SlowMovers(items, completed, time.Now().AddDate(0, 0, -slowMoverDays)),
		LowStock:           low,
	}
}
