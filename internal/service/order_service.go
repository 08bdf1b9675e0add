package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stockroom/internal/alerts"
	"stockroom/internal/models"
	"stockroom/internal/store"
	"stockroom/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService drives the order lifecycle against the inventory. Completion
// is check-then-commit: requirements are validated in full before a single
// unit of stock is deducted, so a failed completion changes nothing and no
// rollback machinery is needed.
type OrderService struct {
	mu     sync.Mutex // serializes status transitions with stock deduction
	store  *store.Store
	alerts alerts.Recorder
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(st *store.Store, recorder alerts.Recorder) *OrderService {
	return &OrderService{
		store:  st,
		alerts: recorder,
		logger: util.Named("orders"),
	}
}

// CreateOrderRequest represents the order form input
type CreateOrderRequest struct {
	Title        string
	Price        decimal.Decimal
	Requirements map[string]int
}

// Create opens a new order. The request is validated for shape and then
// against current stock, so an order that could never be fulfilled right
// now is rejected up front. Open orders reserve nothing; completion
// re-validates.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (models.Order, error) {
	return s.open(ctx, req, true)
}

func (s *OrderService) open(ctx context.Context, req CreateOrderRequest, announce bool) (models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Create")
	defer span.End()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		util.OrdersFailedTotal.WithLabelValues("invalid_input").Inc()
		return models.Order{}, fmt.Errorf("%w: order title is required", models.ErrValidation)
	}
	if req.Price.IsNegative() {
		util.OrdersFailedTotal.WithLabelValues("invalid_input").Inc()
		return models.Order{}, fmt.Errorf("%w: order price must not be negative", models.ErrValidation)
	}
	if len(req.Requirements) == 0 {
		util.OrdersFailedTotal.WithLabelValues("invalid_input").Inc()
		return models.Order{}, fmt.Errorf("%w: order needs at least one requirement", models.ErrValidation)
	}

	names := make([]string, 0, len(req.Requirements))
	for name := range req.Requirements {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if req.Requirements[name] < 1 {
			util.OrdersFailedTotal.WithLabelValues("invalid_input").Inc()
			return models.Order{}, fmt.Errorf("%w: requirement for %s must be at least 1", models.ErrValidation, name)
		}
		if _, err := s.store.Inventory.Get(name); err != nil {
			util.OrdersFailedTotal.WithLabelValues("unknown_item").Inc()
			return models.Order{}, fmt.Errorf("%w: unknown item %q", models.ErrValidation, name)
		}
	}

	snapshot := s.store.Inventory.Snapshot()
	if !CanFulfill(req.Requirements, snapshot) {
		short, _ := Shortfall(req.Requirements, snapshot)
		util.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
		return models.Order{}, fmt.Errorf("%w: %s has %d, need %d",
			models.ErrInsufficientStock, short.ItemName, snapshot[short.ItemName], short.Quantity)
	}

	order := models.Order{
		ID:           uuid.New().String(),
		Title:        title,
		Price:        req.Price,
		Requirements: req.Requirements,
		Status:       models.OrderStatusOpen,
		CreatedAt:    time.Now(),
	}
	s.store.Orders.Append(order)

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("title", order.Title))

	if announce {
		s.alerts.Record(models.NewOrderAlert(models.AlertOrderCreated, order))
	}
	return order, nil
}

// Complete fulfils an open order, deducting every requirement from stock
func (s *OrderService) Complete(ctx context.Context, orderID string) (models.Order, error) {
	return s.complete(ctx, orderID, models.MovementOrderCompleted, models.AlertOrderCompleted)
}

func (s *OrderService) complete(ctx context.Context, orderID, movementType, alertKind string) (models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Complete")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.store.Orders.Get(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status != models.OrderStatusOpen {
		return models.Order{}, fmt.Errorf("%w: order %s is %s", models.ErrInvalidTransition, orderID, order.Status)
	}

	low, err := s.store.Inventory.DeductAll(order.Requirements, movementType, fmt.Sprintf("order %q", order.Title))
	if err != nil {
		reason := "deduction_failed"
		if errors.Is(err, models.ErrInsufficientStock) {
			reason = "insufficient_stock"
		}
		util.OrdersFailedTotal.WithLabelValues(reason).Inc()
		return models.Order{}, err
	}

	order, err = s.store.Orders.Transition(orderID, models.OrderStatusOpen, models.OrderStatusCompleted)
	if err != nil {
		return models.Order{}, err
	}

	util.OrdersCompletedTotal.Inc()
	s.logger.Info("Order completed",
		zap.String("order_id", order.ID),
		zap.String("title", order.Title))

	s.alerts.Record(models.NewOrderAlert(alertKind, order))
	s.recordLowStock(low)
	refreshInventoryGauges(s.store)

	return order, nil
}

// Cancel closes an open order without touching inventory. Cancelled orders
// stay in the ledger; the status is terminal.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Cancel")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.store.Orders.Transition(orderID, models.OrderStatusOpen, models.OrderStatusCancelled)
	if err != nil {
		return models.Order{}, err
	}

	util.OrdersCancelledTotal.Inc()
	s.logger.Info("Order cancelled",
		zap.String("order_id", order.ID),
		zap.String("title", order.Title))

	return order, nil
}

// CounterSale sells the given lines over the counter: an order is opened
// and completed in one step. When completion fails the fresh order is
// cancelled so nothing stray stays in the queue.
func (s *OrderService) CounterSale(ctx context.Context, lines []models.DraftLine) (models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CounterSale")
	defer span.End()

	if len(lines) == 0 {
		return models.Order{}, fmt.Errorf("%w: nothing to sell", models.ErrValidation)
	}

	requirements := make(map[string]int, len(lines))
	price := decimal.Zero
	for _, line := range lines {
		requirements[line.ItemName] += line.Quantity
		price = price.Add(line.Total())
	}

	req := CreateOrderRequest{
		Title:        "Counter sale " + time.Now().Format("20060102-150405"),
		Price:        price,
		Requirements: requirements,
	}
	order, err := s.open(ctx, req, false)
	if err != nil {
		return models.Order{}, err
	}

	completed, err := s.complete(ctx, order.ID, models.MovementCounterSale, models.AlertCounterSale)
	if err != nil {
		if _, cancelErr := s.Cancel(ctx, order.ID); cancelErr != nil {
			s.logger.Error("Failed to cancel counter sale order",
				zap.String("order_id", order.ID),
				zap.Error(cancelErr))
		}
		return models.Order{}, err
	}

	util.CounterSalesTotal.Inc()
	s.logger.Info("Counter sale processed",
		zap.String("order_id", completed.ID),
		zap.String("price", completed.Price.StringFixed(2)))

	return completed, nil
}

// GetOrder returns one order by id
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	return s.store.Orders.Get(orderID)
}

// ListOpen returns the fulfillment queue, oldest first
func (s *OrderService) ListOpen(ctx context.Context) []models.Order {
	return s.store.Orders.ListOpen()
}

// ListCompleted returns completed orders, most recently completed first
func (s *OrderService) ListCompleted(ctx context.Context) []models.Order {
	return s.store.Orders.ListCompleted()
}

// ListCancelled returns cancelled orders, most recently cancelled first
func (s *OrderService) ListCancelled(ctx context.Context) []models.Order {
	return s.store.Orders.ListCancelled()
}

func (s *OrderService) recordLowStock(items []models.InventoryItem) {
	for _, item := range items {
		util.LowStockAlertsTotal.Inc()
		s.alerts.Record(models.NewLowStockAlert(item))
	}
}
