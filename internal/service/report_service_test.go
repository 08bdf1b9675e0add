package service

import (
	"context"
	"testing"

	"stockroom/internal/alerts"
	"stockroom/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinancialReport(t *testing.T) {
	st := store.New()
	orders := NewOrderService(st, alerts.NewLog(10))
	reports := NewReportService(st)
	ctx := context.Background()

	seedItem(t, st, "flour", 10, "1.50", 4)
	seedItem(t, st, "sugar", 5, "2.00", 0)
	_, err := st.Suppliers.Add("Mill Co", "", "", "")
	require.NoError(t, err)

	toComplete, err := orders.Create(ctx, CreateOrderRequest{
		Title:        "bake",
		Price:        decimal.RequireFromString("6.00"),
		Requirements: map[string]int{"flour": 6},
	})
	require.NoError(t, err)
	_, err = orders.Complete(ctx, toComplete.ID)
	require.NoError(t, err)

	toCancel, err := orders.Create(ctx, CreateOrderRequest{
		Title:        "maybe",
		Price:        decimal.RequireFromString("2.00"),
		Requirements: map[string]int{"sugar": 1},
	})
	require.NoError(t, err)
	_, err = orders.Cancel(ctx, toCancel.ID)
	require.NoError(t, err)

	_, err = orders.Create(ctx, CreateOrderRequest{
		Title:        "later",
		Price:        decimal.RequireFromString("2.00"),
		Requirements: map[string]int{"sugar": 1},
	})
	require.NoError(t, err)

	report := reports.Financial(ctx)

	assert.True(t, decimal.RequireFromString("6.00").Equal(report.TotalSales))
	assert.Equal(t, 1, report.CompletedOrders)
	assert.True(t, decimal.RequireFromString("6.00").Equal(report.AverageOrderValue))

	// 4 flour at 1.50 plus 5 sugar at 2.00.
	assert.True(t, decimal.RequireFromString("16.00").Equal(report.InventoryValuation))
	assert.Equal(t, 2, report.ItemCount)
	assert.Equal(t, 1, report.OpenOrders)
	assert.Equal(t, 1, report.CancelledOrders)
	assert.Equal(t, 1, report.Suppliers)

	require.Len(t, report.TopSellers, 1)
	assert.Equal(t, SellerStat{ItemName: "flour", Units: 6}, report.TopSellers[0])

	// Sugar has no completed sale inside the window; flour just sold.
	require.Len(t, report.SlowMovers, 1)
	assert.Equal(t, "sugar", report.SlowMovers[0].Name)

	require.Len(t, report.LowStock, 1)
	assert.Equal(t, "flour", report.LowStock[0].Name)
}

func TestFinancialReportEmptyShop(t *testing.T) {
	reports := NewReportService(store.New())

	report := reports.Financial(context.Background())
	assert.True(t, report.TotalSales.IsZero())
	assert.True(t, report.AverageOrderValue.IsZero())
	assert.True(t, report.InventoryValuation.IsZero())
	assert.Zero(t, report.ItemCount)
	assert.Empty(t, report.TopSellers)
	assert.Empty(t, report.SlowMovers)
	assert.Empty(t, report.LowStock)
}
