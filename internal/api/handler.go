package api

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stockroom/internal/alerts"
	"stockroom/internal/export"
	"stockroom/internal/models"
	"stockroom/internal/service"
	"stockroom/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// PageConfig carries display settings shared by every page
type PageConfig struct {
	ShopName string
	Currency string
}

// Handler serves the form-driven pages. It owns no business logic; form
// input is converted and validated here, domain errors come back as flash
// messages on the redirect.
type Handler struct {
	inventory *service.InventoryService
	orders    *service.OrderService
	drafts    *service.DraftBuilder
	reports   *service.ReportService
	alertLog  *alerts.Log
	page      PageConfig
	tmpl      *template.Template
}

// NewHandler creates a new HTTP handler
func NewHandler(
	inventory *service.InventoryService,
	orders *service.OrderService,
	drafts *service.DraftBuilder,
	reports *service.ReportService,
	alertLog *alerts.Log,
	page PageConfig,
) *Handler {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return page.Currency + d.StringFixed(2)
		},
		"amount": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
	}

	return &Handler{
		inventory: inventory,
		orders:    orders,
		drafts:    drafts,
		reports:   reports,
		alertLog:  alertLog,
		page:      page,
		tmpl:      template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl")),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.SetHTMLTemplate(h.tmpl)

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", h.dashboardPage)

	router.GET("/inventory", h.inventoryPage)
	router.POST("/inventory", h.createItem)
	router.GET("/inventory/edit", h.editItemPage)
	router.POST("/inventory/edit", h.updateItem)
	router.POST("/inventory/restock", h.restockItem)
	router.GET("/inventory/history", h.itemHistoryPage)
	router.GET("/inventory/export", h.exportInventory)
	router.GET("/lookup", h.lookupPage)

	router.GET("/suppliers", h.suppliersPage)
	router.POST("/suppliers", h.createSupplier)

	router.GET("/orders", h.ordersPage)
	router.POST("/orders", h.createOrder)
	router.POST("/orders/:id/complete", h.completeOrder)
	router.POST("/orders/:id/cancel", h.cancelOrder)
	router.GET("/orders/history", h.orderHistoryPage)

	router.POST("/draft/lines", h.addDraftLine)
	router.POST("/draft/update", h.setDraftLine)
	router.POST("/draft/clear", h.clearDraft)
	router.POST("/sale", h.counterSale)

	router.GET("/report", h.reportPage)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// dashboardPage shows the shop at a glance
func (h *Handler) dashboardPage(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.tmpl", h.pageData(c, gin.H{
		"Report": h.reports.Financial(c.Request.Context()),
		"Alerts": h.alertLog.Recent(10),
	}))
}

// reportPage shows the full financial report
func (h *Handler) reportPage(c *gin.Context) {
	c.HTML(http.StatusOK, "report.tmpl", h.pageData(c, gin.H{
		"Report": h.reports.Financial(c.Request.Context()),
	}))
}

// suppliersPage lists the directory with the add form
func (h *Handler) suppliersPage(c *gin.Context) {
	c.HTML(http.StatusOK, "suppliers.tmpl", h.pageData(c, gin.H{
		"Suppliers": h.inventory.ListSuppliers(c.Request.Context()),
	}))
}

// createSupplier handles the add-supplier form
func (h *Handler) createSupplier(c *gin.Context) {
	sup, err := h.inventory.AddSupplier(c.Request.Context(),
		c.PostForm("name"), c.PostForm("contact_person"), c.PostForm("email"), c.PostForm("phone"))
	if err != nil {
		redirectError(c, "/suppliers", err)
		return
	}
	redirectMessage(c, "/suppliers", sup.Name+" added")
}

// lookupPage resolves a scanned code or typed name. Unknown codes flow
// into a prefilled registration form.
func (h *Handler) lookupPage(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	data := gin.H{"Code": code}

	if code != "" {
		item, err := h.inventory.GetItem(c.Request.Context(), code)
		if err != nil {
			data["NotFound"] = true
		} else {
			data["Item"] = item
		}
	}
	c.HTML(http.StatusOK, "lookup.tmpl", h.pageData(c, data))
}

// exportInventory streams the inventory snapshot as a CSV attachment
func (h *Handler) exportInventory(c *gin.Context) {
	items := h.inventory.ListItems(c.Request.Context(), "")

	filename := fmt.Sprintf("inventory-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.InventoryCSV(c.Writer, items); err != nil {
		util.GetLogger().Error("Inventory export failed", zap.Error(err))
	}
}

// pageData merges the shared page fields with handler-specific ones
func (h *Handler) pageData(c *gin.Context, extra gin.H) gin.H {
	data := gin.H{
		"Shop":  h.page.ShopName,
		"Flash": c.Query("msg"),
		"Error": c.Query("err"),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// redirectError sends the user back with the failure as a flash message;
// domain errors never escalate past this point.
func redirectError(c *gin.Context, to string, err error) {
	c.Redirect(http.StatusSeeOther, appendQuery(to, url.Values{"err": {err.Error()}}))
}

func redirectMessage(c *gin.Context, to, msg string) {
	c.Redirect(http.StatusSeeOther, appendQuery(to, url.Values{"msg": {msg}}))
}

func appendQuery(to string, vals url.Values) string {
	sep := "?"
	if strings.Contains(to, "?") {
		sep = "&"
	}
	return to + sep + vals.Encode()
}

// formInt reads an integer form field, using fallback when it is absent
func formInt(c *gin.Context, field string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", models.ErrValidation, field)
	}
	return n, nil
}

// formDecimal reads a decimal form field, using fallback when it is absent
func formDecimal(c *gin.Context, field string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s must be a number", models.ErrValidation, field)
	}
	return d, nil
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
