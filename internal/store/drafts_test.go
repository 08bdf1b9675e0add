package store

import (
	"testing"

	"stockroom/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftGetMissingReturnsEmpty(t *testing.T) {
	s := NewDraftStore()

	d := s.Get("nope")
	assert.Equal(t, "nope", d.ID)
	assert.Empty(t, d.Lines)
}

func TestDraftPutAndDelete(t *testing.T) {
	s := NewDraftStore()
	s.Put(models.Draft{
		ID:    "d1",
		Lines: []models.DraftLine{{ItemName: "flour", Quantity: 2, UnitPrice: decimal.RequireFromString("1.50")}},
	})

	got := s.Get("d1")
	require.Len(t, got.Lines, 1)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
	assert.True(t, decimal.RequireFromString("3.00").Equal(got.Total()))

	s.Delete("d1")
	assert.Empty(t, s.Get("d1").Lines)
}

func TestDraftLinesAreCloned(t *testing.T) {
	s := NewDraftStore()
	lines := []models.DraftLine{{ItemName: "flour", Quantity: 2}}
	s.Put(models.Draft{ID: "d1", Lines: lines})

	lines[0].Quantity = 99
	assert.Equal(t, 2, s.Get("d1").Lines[0].Quantity)
}
