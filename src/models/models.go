package models

import "github.com/shopspring/decimal"

// ParseSummary describes one parsed file. Row-level problems never abort a
// parse; callers must inspect Warnings to detect degraded input.
type ParseSummary struct {
	TotalRows          int                 `json:"total_rows"`
	TotalRevenue       decimal.Decimal     `json:"total_revenue"`
	TotalQty           int                 `json:"total_qty"`
	TotalReturned      int                 `json:"total_returned"`
	Warnings           []string            `json:"warnings"`
	UnmappedProvinces  []string            `json:"unmapped_provinces"`
	CellsCoercedToZero int                 `json:"cells_coerced_to_zero"`
	Dispositions       map[Disposition]int `json:"dispositions"`
}

// ParseResult is the output of parsers.Parse.
type ParseResult struct {
	Platform        Platform        `json:"platform"`
	Rows            []ClassifiedRow `json:"rows"`
	Summary         ParseSummary    `json:"summary"`
	UnresolvedCodes []string        `json:"unresolved_codes"`
}
