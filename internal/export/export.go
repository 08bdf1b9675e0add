// Package export renders inventory snapshots as downloadable documents.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"stockroom/internal/models"

	"github.com/shopspring/decimal"
)

// InventoryCSV writes one row per item plus a trailing valuation row
func InventoryCSV(w io.Writer, items []models.InventoryItem) error {
	cw := csv.NewWriter(w)

	header := []string{"name", "quantity", "unit_price", "line_value", "min_stock_alert", "supplier"}
	if err := cw.Write(header); err != nil {
		return err
	}

	total := decimal.Zero
	for _, item := range items {
		lineValue := item.LineValue()
		total = total.Add(lineValue)

		record := []string{
			item.Name,
			strconv.Itoa(item.Quantity),
			item.UnitPrice.StringFixed(2),
			lineValue.StringFixed(2),
			strconv.Itoa(item.MinStockAlert),
			item.Supplier,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	if err := cw.Write([]string{"total", "", "", total.StringFixed(2), "", ""}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
