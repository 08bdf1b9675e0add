package service

import (
	"context"
	"fmt"

	"stockroom/internal/models"
	"stockroom/internal/store"
	"stockroom/internal/util"

	"go.uber.org/zap"
)

// DraftBuilder maintains per-session order drafts. Lines are capped at the
// stock available when they are touched, and each line captures the unit
// price at that moment.
type DraftBuilder struct {
	store  *store.Store
	logger *zap.Logger
}

// NewDraftBuilder creates a new draft builder
func NewDraftBuilder(st *store.Store) *DraftBuilder {
	return &DraftBuilder{
		store:  st,
		logger: util.Named("drafts"),
	}
}

// AddLine merges a quantity of an item into the draft. The merged quantity
// is capped at available stock; capped reports whether that happened.
func (b *DraftBuilder) AddLine(ctx context.Context, draftID, itemName string, qty int) (models.Draft, bool, error) {
	if qty < 1 {
		return models.Draft{}, false, fmt.Errorf("%w: quantity must be at least 1", models.ErrValidation)
	}

	item, err := b.store.Inventory.Get(itemName)
	if err != nil {
		return models.Draft{}, false, err
	}
	if item.Quantity == 0 {
		return models.Draft{}, false, fmt.Errorf("%w: %s is out of stock", models.ErrInsufficientStock, item.Name)
	}

	draft := b.store.Drafts.Get(draftID)
	idx, current := findLine(draft.Lines, item.Name)

	want := current + qty
	capped := false
	if want > item.Quantity {
		want = item.Quantity
		capped = true
	}

	line := models.DraftLine{ItemName: item.Name, Quantity: want, UnitPrice: item.UnitPrice}
	if idx >= 0 {
		draft.Lines[idx] = line
	} else {
		draft.Lines = append(draft.Lines, line)
	}
	b.store.Drafts.Put(draft)

	b.logger.Debug("Draft line added",
		zap.String("draft_id", draftID),
		zap.String("item", item.Name),
		zap.Int("quantity", want))

	return b.store.Drafts.Get(draftID), capped, nil
}

// SetLineQuantity changes one line's quantity, capped at available stock.
// A quantity of zero removes the line.
func (b *DraftBuilder) SetLineQuantity(ctx context.Context, draftID, itemName string, qty int) (models.Draft, bool, error) {
	if qty < 0 {
		return models.Draft{}, false, fmt.Errorf("%w: quantity must not be negative", models.ErrValidation)
	}

	draft := b.store.Drafts.Get(draftID)
	idx, _ := findLine(draft.Lines, itemName)
	if idx < 0 {
		return models.Draft{}, false, fmt.Errorf("%w: draft has no line for %q", models.ErrNotFound, itemName)
	}

	if qty == 0 {
		draft.Lines = append(draft.Lines[:idx], draft.Lines[idx+1:]...)
		b.store.Drafts.Put(draft)
		return b.store.Drafts.Get(draftID), false, nil
	}

	item, err := b.store.Inventory.Get(itemName)
	if err != nil {
		return models.Draft{}, false, err
	}

	capped := false
	if qty > item.Quantity {
		qty = item.Quantity
		capped = true
	}
	if qty == 0 {
		draft.Lines = append(draft.Lines[:idx], draft.Lines[idx+1:]...)
		b.store.Drafts.Put(draft)
		return b.store.Drafts.Get(draftID), capped, nil
	}

	draft.Lines[idx] = models.DraftLine{ItemName: item.Name, Quantity: qty, UnitPrice: item.UnitPrice}
	b.store.Drafts.Put(draft)

	return b.store.Drafts.Get(draftID), capped, nil
}

// Clear drops the draft entirely
func (b *DraftBuilder) Clear(ctx context.Context, draftID string) {
	b.store.Drafts.Delete(draftID)
}

// Get returns the draft for the id, empty when none exists
func (b *DraftBuilder) Get(ctx context.Context, draftID string) models.Draft {
	return b.store.Drafts.Get(draftID)
}

func findLine(lines []models.DraftLine, itemName string) (int, int) {
	for i, line := range lines {
		if line.ItemName == itemName {
			return i, line.Quantity
		}
	}
	return -1, 0
}
