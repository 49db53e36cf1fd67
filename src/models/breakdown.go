package models

import "github.com/shopspring/decimal"

// BreakdownNode is one label of a revenue/fee breakdown. A node with children
// always carries the sum of its children's values.
type BreakdownNode struct {
	Label    string          `json:"label"`
	Value    decimal.Decimal `json:"value"`
	Children []BreakdownNode `json:"children,omitempty"`
}

// BreakdownGroup is a named set of non-zero breakdown labels for one platform.
type BreakdownGroup struct {
	Platform Platform        `json:"platform"`
	Name     string          `json:"name"`
	Kind     GroupKind       `json:"kind"`
	Items    []BreakdownNode `json:"items"`
}

// DailyBucket accumulates settled rows for one calendar day.
type DailyBucket struct {
	Date        string          `json:"date"`
	Revenue     decimal.Decimal `json:"revenue"`
	Fees        decimal.Decimal `json:"fees"`
	Adjustments decimal.Decimal `json:"adjustments"`
}

// Total is revenue + fees + adjustments.
func (b DailyBucket) Total() decimal.Decimal {
	return b.Revenue.Add(b.Fees).Add(b.Adjustments)
}

// TrendWindow holds the last active days of a bucket series as parallel arrays.
type TrendWindow struct {
	Dates  []string          `json:"dates"`
	Values []decimal.Decimal `json:"values"`
}

// AggregateResult is the output of one aggregation run.
type AggregateResult struct {
	Breakdown     []BreakdownGroup  `json:"breakdown"`
	FeeGroups     []BreakdownGroup  `json:"fee_groups"`
	RevenueGroups []BreakdownGroup  `json:"revenue_groups"`
	PerDay        []DailyBucket     `json:"per_day"`
	PerDayAlt     []DailyBucket     `json:"per_day_alt"`
	Trend         []decimal.Decimal `json:"trend"`
	TrendDates    []string          `json:"trend_dates"`

	Revenue     decimal.Decimal `json:"revenue"`
	Fees        decimal.Decimal `json:"fees"`
	Adjustments decimal.Decimal `json:"adjustments"`
	Settlement  decimal.Decimal `json:"settlement"`
}
