// Package lazada classifies Lazada order-item exports. Lazada reports one row
// per unit and settlement stage, so rows are grouped by order item and seller
// SKU before a disposition is assigned.
package lazada

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
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

func (c *Classifier) Platform() models.Platform { return models.PlatformLazada }
func (c *Classifier) Schema() columns.Schema { return c.schema }
func (c *Classifier) Labels() models.LabelRegistry { return c.labels }

// lineItem accumulates every raw row observed for one orderItemId::sellerSku.
type lineItem struct {
	key         string
	orderNumber string
	sku         string
	name        string
	province    string
	orderDate   string
	paymentDate string
	firstLine   int

	confirmed int
	returned  int
	revenue   decimal.Decimal

	components map[string]decimal.Decimal
}

// Classify groups raw rows and emits one ClassifiedRow per distinct key, in
// order of first appearance.
func (c *Classifier) Classify(rows []models.RawRow, cols columns.Resolved, cells *utils.CellParser) ([]models.ClassifiedRow, []string) {
	var (
		order    []string
		items    = make(map[string]*lineItem)
		warnings []string
	)

	for _, raw := range rows {
		sku := cols.Get(raw, fieldSellerSku)
		if sku == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: missing product code, skipped", raw.Line))
			continue
		}
		itemID := cols.Get(raw, fieldOrderItemID)
		if itemID == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: missing order item id, skipped", raw.Line))
			continue
		}

		status := strings.TrimSpace(cols.Get(raw, fieldStatus))
		folded := strings.ToLower(status)
		if !knownStatus(folded) {
			warnings = append(warnings, fmt.Sprintf("row %d: unknown status %q, skipped", raw.Line, status))
			continue
		}

		key := itemID + "::" + sku
		item, ok := items[key]
		if !ok {
			item = &lineItem{key: key, sku: sku, firstLine: raw.Line, components: make(map[string]decimal.Decimal)}
			items[key] = item
			order = append(order, key)
		}
		item.observe(raw, cols)

		// Revenue is the unit-price sum; the seller discount only shows up in
		// the breakdown.
		switch folded {
		case statusConfirmed:
			item.confirmed++
			item.revenue = item.revenue.Add(cells.Amount(cols.Get(raw, fieldUnitPrice)))
			columns.MergeComponents(item.components, columns.ReadComponents(c.labels, cols, raw, cells, true))
		case statusReturned:
			item.returned++
			columns.MergeComponents(item.components, columns.ReadComponents(c.labels, cols, raw, cells, false))
		}
	}

	out := make([]models.ClassifiedRow, 0, len(order))
	for _, key := range order {
		out = append(out, c.emit(items[key]))
	}
	return out, warnings
}

// observe keeps the smallest non-empty value of each descriptive field so
// the emitted row does not depend on the order of the raw rows.
func (it *lineItem) observe(raw models.RawRow, cols columns.Resolved) {
	if raw.Line < it.firstLine {
		it.firstLine = raw.Line
	}
	it.orderNumber = minNonEmpty(it.orderNumber, cols.Get(raw, fieldOrderNumber))
	it.name = minNonEmpty(it.name, cols.Get(raw, fieldItemName))
	it.province = minNonEmpty(it.province, cols.Get(raw, fieldProvince))
	it.orderDate = minNonEmpty(it.orderDate, utils.ParseCellDate(cols.Get(raw, fieldOrderDate)))
	it.paymentDate = minNonEmpty(it.paymentDate, utils.ParseCellDate(cols.Get(raw, fieldPaymentDate)))
}

func (c *Classifier) emit(it *lineItem) models.ClassifiedRow {
	row := models.ClassifiedRow{
		Platform:    models.PlatformLazada,
		ExternalID:  it.key,
		OrderID:     it.orderNumber,
		ProductCode: it.sku,
		ProductName: it.name,
		ProvinceRaw: it.province,
		OrderDate:   it.orderDate,
		PaymentDate: it.paymentDate,
		RowNumber:   it.firstLine,
	}
	switch {
	case it.confirmed > 0:
		row.Disposition = models.DispositionConfirmed
		row.RevenueConfirmed = it.revenue
	case it.returned > 0:
		row.Disposition = models.DispositionReturned
	default:
		// only cancellations were seen for this item
		row.Disposition = models.DispositionCancelled
	}
	row.QuantityConfirmed = it.confirmed
	row.QuantityReturned = it.returned

	if row.Disposition.Settled() {
		row.Components = it.components
		row.Fees, row.Adjustments = columns.Totals(c.labels, it.components)
	}
	return row
}

func knownStatus(folded string) bool {
	switch folded {
	case statusConfirmed, statusReturned, statusCanceled, statusCancelled:
		return true
	}
	return false
}

func minNonEmpty(current, candidate string) string {
	if candidate == "" {
		return current
	}
	if current == "" || candidate < current {
		return candidate
	}
	return current
}
