// Package shopee classifies Shopee seller-centre order exports.
package shopee

import (
	"fmt"
	"strings"

	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers/columns"
	"github.com/username/salesfolio/backend/src/utils"
)

type Classifier struct {
	schema columns.Schema
	labels models.LabelRegistry
}

func NewClassifier() *Classifier {
	return &Classifier{schema: newSchema(), labels: newLabels()}
}

func (c *Classifier) Platform() models.Platform { return models.PlatformShopee }
func (c *Classifier) Schema() columns.Schema { return c.schema }
func (c *Classifier) Labels() models.LabelRegistry { return c.labels }

// Classify emits one ClassifiedRow per order line. Rows without a product
// code are skipped with a warning.
func (c *Classifier) Classify(rows []models.RawRow, cols columns.Resolved, cells *utils.CellParser) ([]models.ClassifiedRow, []string) {
	var (
		out      []models.ClassifiedRow
		warnings []string
	)
	for _, raw := range rows {
		code := cols.Get(raw, fieldProductCode)
		if code == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: missing product code, skipped", raw.Line))
			continue
		}

		disposition := classifyDisposition(cols.Get(raw, fieldOrderStatus), cols.Get(raw, fieldRefundStatus))
		row := models.ClassifiedRow{
			Platform:    models.PlatformShopee,
			OrderID:     cols.Get(raw, fieldOrderID),
			ProductCode: code,
			ProductName: cols.Get(raw, fieldProductName),
			ProvinceRaw: cols.Get(raw, fieldProvince),
			OrderDate:   utils.ParseCellDate(cols.Get(raw, fieldOrderDate)),
			PaymentDate: utils.ParseCellDate(cols.Get(raw, fieldPaymentDate)),
			RowNumber:   raw.Line,
			Disposition: disposition,
		}
		row.ExternalID = row.OrderID
		if row.ExternalID == "" {
			row.ExternalID = fmt.Sprintf("line-%d", raw.Line)
		}

		qty := cells.Quantity(cols.Get(raw, fieldQuantity))
		switch disposition {
		case models.DispositionConfirmed:
			subtotal := cells.Amount(cols.Get(raw, fieldSubtotal))
			discount := cells.Amount(cols.Get(raw, fieldSellerDiscount))
			row.QuantityConfirmed = qty
			row.RevenueConfirmed = subtotal.Sub(discount.Abs())
		case models.DispositionReturned:
			row.QuantityReturned = qty
		}

		if disposition.Settled() {
			row.Components = columns.ReadComponents(c.labels, cols, raw, cells, disposition == models.DispositionConfirmed)
			row.Fees, row.Adjustments = columns.Totals(c.labels, row.Components)
		}
		out = append(out, row)
	}
	return out, warnings
}

// classifyDisposition checks the order status before the refund status: an
// order still in shipping or fully cancelled never counts as a return.
func classifyDisposition(orderStatus, refundStatus string) models.Disposition {
	if containsAny(orderStatus, shippingMarkers) {
		return models.DispositionIgnored
	}
	if containsAny(orderStatus, cancelledMarkers) {
		return models.DispositionCancelled
	}
	for _, s := range acceptedReturn {
		if strings.EqualFold(strings.TrimSpace(refundStatus), s) {
			return models.DispositionReturned
		}
	}
	return models.DispositionConfirmed
}

func containsAny(s string, markers []string) bool {
	folded := strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(folded, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
