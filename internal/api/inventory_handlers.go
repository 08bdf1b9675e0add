package api

import (
	"net/http"

	"stockroom/internal/models"
	"stockroom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// inventoryPage lists stock with the add-item form, filtered by ?q=
func (h *Handler) inventoryPage(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Query("q")

	c.HTML(http.StatusOK, "inventory.tmpl", h.pageData(c, gin.H{
		"Items":     h.inventory.ListItems(ctx, query),
		"Suppliers": h.inventory.ListSuppliers(ctx),
		"Query":     query,
	}))
}

// createItem handles the add-item form
func (h *Handler) createItem(c *gin.Context) {
	req, err := upsertRequest(c, models.QuantitySet)
	if err != nil {
		redirectError(c, "/inventory", err)
		return
	}

	item, err := h.inventory.UpsertItem(c.Request.Context(), req)
	if err != nil {
		redirectError(c, "/inventory", err)
		return
	}
	redirectMessage(c, "/inventory", item.Name+" saved")
}

// editItemPage shows the edit form for one item
func (h *Handler) editItemPage(c *gin.Context) {
	item, err := h.inventory.GetItem(c.Request.Context(), c.Query("name"))
	if err != nil {
		redirectError(c, "/inventory", err)
		return
	}

	c.HTML(http.StatusOK, "inventory_edit.tmpl", h.pageData(c, gin.H{
		"Item":      item,
		"Suppliers": h.inventory.ListSuppliers(c.Request.Context()),
	}))
}

// updateItem applies the edit form. Quantity is absolute here.
func (h *Handler) updateItem(c *gin.Context) {
	req, err := upsertRequest(c, models.QuantitySet)
	if err != nil {
		redirectError(c, "/inventory", err)
		return
	}

	item, err := h.inventory.UpsertItem(c.Request.Context(), req)
	if err != nil {
		redirectError(c, "/inventory", err)
		return
	}
	redirectMessage(c, "/inventory", item.Name+" updated")
}

// restockItem applies a signed quantity delta from the inline row form.
// The remaining fields are carried over from the stored item so a plain
// restock never rewrites price or supplier.
func (h *Handler) restockItem(c *gin.Context) {
	quantity, err := formInt(c, "quantity", 0)
	if err != nil {
		redirectError(c, "/inventory", err)
		return
	}

	ctx := c.Request.Context()
	current, err := h.inventory.GetItem(ctx, c.PostForm("name"))
	if err != nil {
		redirectError(c, "/inventory", err)
		return
	}

	item, err := h.inventory.UpsertItem(ctx, service.UpsertItemRequest{
		Name:          current.Name,
		Quantity:      quantity,
		Mode:          models.QuantityAdd,
		UnitPrice:     current.UnitPrice,
		MinStockAlert: current.MinStockAlert,
		Supplier:      current.Supplier,
		Details:       c.PostForm("details"),
	})
	if err != nil {
		redirectError(c, "/inventory", err)
		return
	}
	redirectMessage(c, "/inventory", item.Name+" adjusted")
}

// itemHistoryPage shows the movement journal for one item, newest first
func (h *Handler) itemHistoryPage(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.inventory.GetItem(ctx, c.Query("name"))
	if err != nil {
		redirectError(c, "/inventory", err)
		return
	}

	movements, err := h.inventory.ItemMovements(ctx, item.Name)
	if err != nil {
		redirectError(c, "/inventory", err)
		return
	}

	c.HTML(http.StatusOK, "inventory_history.tmpl", h.pageData(c, gin.H{
		"Item":      item,
		"Movements": movements,
	}))
}

// upsertRequest reads the shared item form fields
func upsertRequest(c *gin.Context, mode string) (service.UpsertItemRequest, error) {
	quantity, err := formInt(c, "quantity", 0)
	if err != nil {
		return service.UpsertItemRequest{}, err
	}
	unitPrice, err := formDecimal(c, "unit_price", decimal.Zero)
	if err != nil {
		return service.UpsertItemRequest{}, err
	}
	minStock, err := formInt(c, "min_stock", 0)
	if err != nil {
		return service.UpsertItemRequest{}, err
	}

	return service.UpsertItemRequest{
		Name:          c.PostForm("name"),
		Quantity:      quantity,
		Mode:          mode,
		UnitPrice:     unitPrice,
		MinStockAlert: minStock,
		Supplier:      c.PostForm("supplier"),
		Details:       c.PostForm("details"),
	}, nil
}
