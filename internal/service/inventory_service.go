package service

import (
	"context"

	"stockroom/internal/models"
	"stockroom/internal/store"
	"stockroom/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryService handles stock keeping and the supplier directory
type InventoryService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(st *store.Store) *InventoryService {
	return &InventoryService{
		store:  st,
		logger: util.Named("inventory"),
	}
}

// UpsertItemRequest carries the inventory form input
type UpsertItemRequest struct {
	Name          string
	Quantity      int
	Mode          string
	UnitPrice     decimal.Decimal
	MinStockAlert int
	Supplier      string
	Details       string
}

// UpsertItem creates or updates a stock item
func (s *InventoryService) UpsertItem(ctx context.Context, req UpsertItemRequest) (models.InventoryItem, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.UpsertItem")
	defer span.End()

	item, err := s.store.Inventory.Upsert(store.UpsertParams{
		Name:          req.Name,
		Quantity:      req.Quantity,
		Mode:          req.Mode,
		UnitPrice:     req.UnitPrice,
		MinStockAlert: req.MinStockAlert,
		Supplier:      req.Supplier,
		Details:       req.Details,
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.logger.Info("Inventory item upserted",
		zap.String("name", item.Name),
		zap.String("mode", req.Mode),
		zap.Int("quantity", item.Quantity))

	refreshInventoryGauges(s.store)
	return item, nil
}

// GetItem returns one inventory item by name
func (s *InventoryService) GetItem(ctx context.Context, name string) (models.InventoryItem, error) {
	return s.store.Inventory.Get(name)
}

// ListItems returns items sorted by name, filtered by an optional
// case-insensitive search query
func (s *InventoryService) ListItems(ctx context.Context, query string) []models.InventoryItem {
	return s.store.Inventory.List(query)
}

// ItemMovements returns the stock journal for one item, newest first
func (s *InventoryService) ItemMovements(ctx context.Context, name string) ([]models.StockMovement, error) {
	if _, err := s.store.Inventory.Get(name); err != nil {
		return nil, err
	}
	return s.store.Inventory.Movements(name), nil
}

// AddSupplier registers a supplier in the directory
func (s *InventoryService) AddSupplier(ctx context.Context, name, contactPerson, email, phone string) (models.Supplier, error) {
	sup, err := s.store.Suppliers.Add(name, contactPerson, email, phone)
	if err != nil {
		return models.Supplier{}, err
	}

	s.logger.Info("Supplier added", zap.String("name", sup.Name))
	return sup, nil
}

// ListSuppliers returns the directory sorted by name
func (s *InventoryService) ListSuppliers(ctx context.Context) []models.Supplier {
	return s.store.Suppliers.List()
}

// refreshInventoryGauges re-exports the inventory size and valuation after
// any stock mutation
func refreshInventoryGauges(st *store.Store) {
	items := st.Inventory.List("")
	util.InventoryItemCount.Set(float64(len(items)))
	util.InventoryValuation.Set(InventoryValuation(items).InexactFloat64())
}
