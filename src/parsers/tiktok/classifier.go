// Package tiktok classifies TikTok Shop order exports.
package tiktok

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

func (c *Classifier) Platform() models.Platform { return models.PlatformTikTok }
func (c *Classifier) Schema() columns.Schema { return c.schema }
func (c *Classifier) Labels() models.LabelRegistry { return c.labels }

// Classify emits one ClassifiedRow per SKU line.
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

		cancelType := cols.Get(raw, fieldCancelType)
		disposition, ok := classifyDisposition(cols.Get(raw, fieldStatus), cols.Get(raw, fieldSubstatus), cancelType)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("row %d: unknown cancel type %q, skipped", raw.Line, cancelType))
			continue
		}
		row := models.ClassifiedRow{
			Platform:    models.PlatformTikTok,
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

// classifyDisposition only settles rows whose status and substatus are both
// complete; the cancel/return type then decides between sale and return. It
// reports false for a complete row whose cancel type is not recognised.
func classifyDisposition(status, substatus, cancelType string) (models.Disposition, bool) {
	status = strings.TrimSpace(status)
	cancelType = strings.TrimSpace(cancelType)

	if strings.HasPrefix(strings.ToLower(status), "cancel") {
		return models.DispositionCancelled, true
	}
	if !isComplete(status) || !isComplete(substatus) {
		return models.DispositionIgnored, true
	}
	switch {
	case cancelType == "":
		return models.DispositionConfirmed, true
	case strings.EqualFold(cancelType, cancelTypeReturn):
		return models.DispositionReturned, true
	case strings.EqualFold(cancelType, cancelTypeCancel):
		return models.DispositionCancelled, true
	default:
		return "", false
	}
}

func isComplete(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, statusComplete) || strings.EqualFold(s, statusCompleted)
}
