package store

import (
	"testing"

	"stockroom/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUpsert(t *testing.T, s *InventoryStore, p UpsertParams) models.InventoryItem {
	t.Helper()
	item, err := s.Upsert(p)
	require.NoError(t, err)
	return item
}

func TestUpsertCreatesItem(t *testing.T) {
	s := NewInventoryStore()

	item := mustUpsert(t, s, UpsertParams{
		Name:          "flour",
		Quantity:      10,
		Mode:          models.QuantitySet,
		UnitPrice:     decimal.RequireFromString("1.50"),
		MinStockAlert: 4,
		Supplier:      "Mill Co",
	})

	assert.Equal(t, "flour", item.Name)
	assert.Equal(t, 10, item.Quantity)
	assert.Equal(t, "Mill Co", item.Supplier)
	assert.False(t, item.CreatedAt.IsZero())

	moves := s.Movements("flour")
	require.Len(t, moves, 1)
	assert.Equal(t, models.MovementInitialStock, moves[0].Type)
	assert.Equal(t, 10, moves[0].QuantityChange)
}

func TestUpsertSetAndAdd(t *testing.T) {
	s := NewInventoryStore()
	price := decimal.RequireFromString("2.00")

	mustUpsert(t, s, UpsertParams{Name: "sugar", Quantity: 5, Mode: models.QuantitySet, UnitPrice: price})

	item := mustUpsert(t, s, UpsertParams{Name: "sugar", Quantity: 3, Mode: models.QuantityAdd, UnitPrice: price})
	assert.Equal(t, 8, item.Quantity)

	item = mustUpsert(t, s, UpsertParams{Name: "sugar", Quantity: -2, Mode: models.QuantityAdd, UnitPrice: price})
	assert.Equal(t, 6, item.Quantity)

	item = mustUpsert(t, s, UpsertParams{Name: "sugar", Quantity: 4, Mode: models.QuantitySet, UnitPrice: price})
	assert.Equal(t, 4, item.Quantity)

	moves := s.Movements("sugar")
	require.Len(t, moves, 4)
	assert.Equal(t, -2, moves[0].QuantityChange)
	assert.Equal(t, models.MovementManualAdjustment, moves[0].Type)
	assert.Equal(t, models.MovementInitialStock, moves[3].Type)
}

func TestUpsertPriceChangeJournalsNothing(t *testing.T) {
	s := NewInventoryStore()
	mustUpsert(t, s, UpsertParams{Name: "jam", Quantity: 2, Mode: models.QuantitySet, UnitPrice: decimal.RequireFromString("3.00")})

	item := mustUpsert(t, s, UpsertParams{Name: "jam", Quantity: 2, Mode: models.QuantitySet, UnitPrice: decimal.RequireFromString("3.50")})
	assert.True(t, decimal.RequireFromString("3.50").Equal(item.UnitPrice))

	assert.Len(t, s.Movements("jam"), 1)
}

func TestUpsertValidation(t *testing.T) {
	s := NewInventoryStore()
	price := decimal.RequireFromString("1.00")

	cases := []struct {
		name string
		p    UpsertParams
	}{
		{"blank name", UpsertParams{Name: "  ", Quantity: 1, Mode: models.QuantitySet, UnitPrice: price}},
		{"negative price", UpsertParams{Name: "x", Quantity: 1, Mode: models.QuantitySet, UnitPrice: decimal.RequireFromString("-1")}},
		{"negative threshold", UpsertParams{Name: "x", Quantity: 1, Mode: models.QuantitySet, UnitPrice: price, MinStockAlert: -1}},
		{"unknown mode", UpsertParams{Name: "x", Quantity: 1, Mode: "MERGE", UnitPrice: price}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Upsert(tc.p)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestUpsertRejectsNegativeResult(t *testing.T) {
	s := NewInventoryStore()
	price := decimal.RequireFromString("1.00")
	mustUpsert(t, s, UpsertParams{Name: "x", Quantity: 3, Mode: models.QuantitySet, UnitPrice: price})

	_, err := s.Upsert(UpsertParams{Name: "x", Quantity: -5, Mode: models.QuantityAdd, UnitPrice: price})
	assert.ErrorIs(t, err, models.ErrValidation)

	item, err := s.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
}

func TestGetUnknownItem(t *testing.T) {
	s := NewInventoryStore()
	_, err := s.Get("ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListFiltersAndSorts(t *testing.T) {
	s := NewInventoryStore()
	price := decimal.RequireFromString("1.00")
	for _, name := range []string{"Whole flour", "sugar", "rye flour"} {
		mustUpsert(t, s, UpsertParams{Name: name, Quantity: 1, Mode: models.QuantitySet, UnitPrice: price})
	}

	all := s.List("")
	require.Len(t, all, 3)
	assert.Equal(t, "rye flour", all[0].Name)
	assert.Equal(t, "sugar", all[1].Name)
	assert.Equal(t, "Whole flour", all[2].Name)

	flours := s.List("FLOUR")
	require.Len(t, flours, 2)
	assert.Equal(t, "rye flour", flours[0].Name)
	assert.Equal(t, "Whole flour", flours[1].Name)
}

func TestDeductAllAppliesEverythingOrNothing(t *testing.T) {
	s := NewInventoryStore()
	price := decimal.RequireFromString("1.00")
	mustUpsert(t, s, UpsertParams{Name: "flour", Quantity: 10, Mode: models.QuantitySet, UnitPrice: price})
	mustUpsert(t, s, UpsertParams{Name: "sugar", Quantity: 2, Mode: models.QuantitySet, UnitPrice: price})

	_, err := s.DeductAll(map[string]int{"flour": 1, "sugar": 5}, models.MovementOrderCompleted, "order")
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	flour, err := s.Get("flour")
	require.NoError(t, err)
	assert.Equal(t, 10, flour.Quantity)

	sugar, err := s.Get("sugar")
	require.NoError(t, err)
	assert.Equal(t, 2, sugar.Quantity)

	// Only the seeding movements exist.
	assert.Len(t, s.Movements("flour"), 1)
	assert.Len(t, s.Movements("sugar"), 1)
}

func TestDeductAllReportsLowStock(t *testing.T) {
	s := NewInventoryStore()
	mustUpsert(t, s, UpsertParams{
		Name:          "flour",
		Quantity:      10,
		Mode:          models.QuantitySet,
		UnitPrice:     decimal.RequireFromString("1.50"),
		MinStockAlert: 4,
	})

	low, err := s.DeductAll(map[string]int{"flour": 6}, models.MovementOrderCompleted, `order "wedding"`)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "flour", low[0].Name)
	assert.Equal(t, 4, low[0].Quantity)

	moves := s.Movements("flour")
	require.Len(t, moves, 2)
	assert.Equal(t, models.MovementOrderCompleted, moves[0].Type)
	assert.Equal(t, -6, moves[0].QuantityChange)
	assert.Equal(t, `order "wedding"`, moves[0].Details)
}

func TestDeductAllRejectsBadRequirements(t *testing.T) {
	s := NewInventoryStore()
	mustUpsert(t, s, UpsertParams{Name: "flour", Quantity: 5, Mode: models.QuantitySet, UnitPrice: decimal.RequireFromString("1.00")})

	_, err := s.DeductAll(map[string]int{"flour": 0}, models.MovementOrderCompleted, "")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = s.DeductAll(map[string]int{"ghost": 1}, models.MovementOrderCompleted, "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSnapshot(t *testing.T) {
	s := NewInventoryStore()
	price := decimal.RequireFromString("1.00")
	mustUpsert(t, s, UpsertParams{Name: "flour", Quantity: 10, Mode: models.QuantitySet, UnitPrice: price})
	mustUpsert(t, s, UpsertParams{Name: "sugar", Quantity: 2, Mode: models.QuantitySet, UnitPrice: price})

	snap := s.Snapshot()
	assert.Equal(t, map[string]int{"flour": 10, "sugar": 2}, snap)

	// The snapshot is detached from the store.
	snap["flour"] = 0
	item, err := s.Get("flour")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
}
