package columns

import (
	"github.com/shopspring/decimal"
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/utils"
)

// ReadComponents reads every bound label column of a row. Revenue labels are
// read only when includeRevenue is set; zero contributions are omitted.
func ReadComponents(reg models.LabelRegistry, cols Resolved, row models.RawRow, cells *utils.CellParser, includeRevenue bool) map[string]decimal.Decimal {
	comps := make(map[string]decimal.Decimal)
	for _, b := range reg.Bindings {
		if !cols.Has(b.Field) {
			continue
		}
		g, ok := reg.GroupOf(b.Label)
		if !ok {
			continue
		}
		if g.Kind == models.GroupRevenue && !includeRevenue {
			continue
		}
		v := cells.Amount(cols.Get(row, b.Field))
		switch {
		case b.Sign > 0:
			v = v.Abs()
		case b.Sign < 0:
			v = v.Abs().Neg()
		}
		if v.IsZero() {
			continue
		}
		comps[b.Label] = comps[b.Label].Add(v)
	}
	return comps
}

// MergeComponents adds src into dst.
func MergeComponents(dst, src map[string]decimal.Decimal) {
	for label, v := range src {
		dst[label] = dst[label].Add(v)
	}
}

// Totals derives a row's fee and adjustment totals from its components. A
// parent fee label counts only when none of its children carry a value, so a
// total column and its decomposition are never added twice.
func Totals(reg models.LabelRegistry, comps map[string]decimal.Decimal) (fees, adjustments decimal.Decimal) {
	for label, v := range comps {
		g, ok := reg.GroupOf(label)
		if !ok {
			continue
		}
		switch g.Kind {
		case models.GroupFees:
			if reg.IsParent(label) && hasChildValue(reg, comps, label) {
				continue
			}
			fees = fees.Add(v)
		case models.GroupAdjustments:
			adjustments = adjustments.Add(v)
		}
	}
	return fees, adjustments
}

func hasChildValue(reg models.LabelRegistry, comps map[string]decimal.Decimal, parent string) bool {
	for _, c := range reg.Children[parent] {
		if v, ok := comps[c]; ok && !v.IsZero() {
			return true
		}
	}
	return false
}
