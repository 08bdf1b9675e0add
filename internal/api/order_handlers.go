package api

import (
	"net/http"
	"strings"

	"stockroom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const draftCookie = "draft_id"

// draftID returns the session's draft id, minting one on first use
func (h *Handler) draftID(c *gin.Context) string {
	if id, err := c.Cookie(draftCookie); err == nil && id != "" {
		return id
	}
	id := uuid.New().String()
	c.SetCookie(draftCookie, id, 86400, "/", "", false, true)
	return id
}

// ordersPage shows the open queue, the session draft and the submit form
func (h *Handler) ordersPage(c *gin.Context) {
	ctx := c.Request.Context()
	draft := h.drafts.Get(ctx, h.draftID(c))

	c.HTML(http.StatusOK, "orders.tmpl", h.pageData(c, gin.H{
		"Open":       h.orders.ListOpen(ctx),
		"Draft":      draft,
		"DraftTotal": draft.Total(),
		"Items":      h.inventory.ListItems(ctx, ""),
	}))
}

// createOrder turns the session draft into an open order. The price
// defaults to the draft total but the form may quote a different one.
func (h *Handler) createOrder(c *gin.Context) {
	ctx := c.Request.Context()
	draftID := h.draftID(c)
	draft := h.drafts.Get(ctx, draftID)

	requirements := make(map[string]int, len(draft.Lines))
	for _, line := range draft.Lines {
		requirements[line.ItemName] += line.Quantity
	}

	price, err := formDecimal(c, "price", draft.Total())
	if err != nil {
		redirectError(c, "/orders", err)
		return
	}

	order, err := h.orders.Create(ctx, service.CreateOrderRequest{
		Title:        c.PostForm("title"),
		Price:        price,
		Requirements: requirements,
	})
	if err != nil {
		redirectError(c, "/orders", err)
		return
	}

	h.drafts.Clear(ctx, draftID)
	redirectMessage(c, "/orders", "Order "+order.Title+" opened")
}

// completeOrder deducts the order's requirements and closes it
func (h *Handler) completeOrder(c *gin.Context) {
	order, err := h.orders.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		redirectError(c, "/orders", err)
		return
	}
	redirectMessage(c, "/orders", "Order "+order.Title+" completed")
}

// cancelOrder closes an open order without touching inventory
func (h *Handler) cancelOrder(c *gin.Context) {
	order, err := h.orders.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		redirectError(c, "/orders", err)
		return
	}
	redirectMessage(c, "/orders", "Order "+order.Title+" cancelled")
}

// orderHistoryPage lists closed orders
func (h *Handler) orderHistoryPage(c *gin.Context) {
	ctx := c.Request.Context()
	c.HTML(http.StatusOK, "order_history.tmpl", h.pageData(c, gin.H{
		"Completed": h.orders.ListCompleted(ctx),
		"Cancelled": h.orders.ListCancelled(ctx),
	}))
}

// addDraftLine merges an item into the session draft
func (h *Handler) addDraftLine(c *gin.Context) {
	back := safeBack(c)

	quantity, err := formInt(c, "quantity", 1)
	if err != nil {
		redirectError(c, back, err)
		return
	}

	_, capped, err := h.drafts.AddLine(c.Request.Context(), h.draftID(c), c.PostForm("item"), quantity)
	if err != nil {
		redirectError(c, back, err)
		return
	}

	if capped {
		redirectMessage(c, back, "Quantity capped at available stock")
		return
	}
	redirectMessage(c, back, "Added to draft")
}

// setDraftLine overwrites one line's quantity, zero removes it
func (h *Handler) setDraftLine(c *gin.Context) {
	quantity, err := formInt(c, "quantity", 0)
	if err != nil {
		redirectError(c, "/orders", err)
		return
	}

	_, capped, err := h.drafts.SetLineQuantity(c.Request.Context(), h.draftID(c), c.PostForm("item"), quantity)
	if err != nil {
		redirectError(c, "/orders", err)
		return
	}

	if capped {
		redirectMessage(c, "/orders", "Quantity capped at available stock")
		return
	}
	c.Redirect(http.StatusSeeOther, "/orders")
}

// clearDraft drops every line from the session draft
func (h *Handler) clearDraft(c *gin.Context) {
	h.drafts.Clear(c.Request.Context(), h.draftID(c))
	c.Redirect(http.StatusSeeOther, "/orders")
}

// counterSale sells the draft on the spot, deducting stock immediately
func (h *Handler) counterSale(c *gin.Context) {
	ctx := c.Request.Context()
	draftID := h.draftID(c)
	draft := h.drafts.Get(ctx, draftID)

	order, err := h.orders.CounterSale(ctx, draft.Lines)
	if err != nil {
		redirectError(c, "/orders", err)
		return
	}

	h.drafts.Clear(ctx, draftID)
	redirectMessage(c, "/orders", "Sale recorded: "+h.page.Currency+order.Price.StringFixed(2))
}

// safeBack reads the optional "back" field so add-to-draft forms can
// return to the page they were submitted from. Only local paths pass.
func safeBack(c *gin.Context) string {
	back := c.DefaultPostForm("back", "/orders")
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") {
		return "/orders"
	}
	return back
}
