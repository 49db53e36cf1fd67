// src/models/canonical.go
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Platform identifies the marketplace a settlement file was exported from.
type Platform string

const (
	PlatformShopee Platform = "shopee"
	PlatformTikTok Platform = "tiktok"
	PlatformLazada Platform = "lazada"
)

// Platforms lists every supported marketplace in a stable order.
var Platforms = []Platform{PlatformShopee, PlatformTikTok, PlatformLazada}

// ParsePlatform accepts a platform identifier case-insensitively.
func ParsePlatform(s string) (Platform, bool) {
	for _, p := range Platforms {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, true
		}
	}
	return "", false
}

// Disposition is the settlement outcome of one row.
type Disposition string

const (
	DispositionConfirmed Disposition = "confirmed"
	DispositionReturned  Disposition = "returned"
	DispositionCancelled Disposition = "cancelled"
	DispositionIgnored   Disposition = "ignored"
)

// RecordType is the disposition component of the storage composite key.
func (d Disposition) RecordType() string {
	switch d {
	case DispositionConfirmed:
		return "sale"
	case DispositionReturned:
		return "return"
	case DispositionCancelled:
		return "cancel"
	default:
		return "ignored"
	}
}

// Settled reports whether the row contributes to totals and time series.
func (d Disposition) Settled() bool {
	return d == DispositionConfirmed || d == DispositionReturned
}

// RawRow is one spreadsheet data row keyed by the header text of its column.
type RawRow struct {
	Line  int               // 1-based line number in the sheet
	Cells map[string]string // header -> cell text
}

// ClassifiedRow is the canonical per-row fact produced by a platform classifier.
// It is never mutated after the parse pipeline finishes.
type ClassifiedRow struct {
	Platform           Platform        `json:"platform"`
	ExternalID         string          `json:"external_id"`
	OrderID            string          `json:"order_id,omitempty"`
	ProductCode        string          `json:"product_code"`
	ProductName        string          `json:"product_name"`
	QuantityConfirmed  int             `json:"quantity_confirmed"`
	QuantityReturned   int             `json:"quantity_returned"`
	RevenueConfirmed   decimal.Decimal `json:"revenue_confirmed"`
	Fees               decimal.Decimal `json:"fees"`        // signed, costs are negative
	Adjustments        decimal.Decimal `json:"adjustments"` // signed
	ProvinceRaw        string          `json:"province_raw,omitempty"`
	ProvinceNormalized string          `json:"province_normalized,omitempty"`
	OrderDate          string          `json:"order_date,omitempty"`   // ISO day
	PaymentDate        string          `json:"payment_date,omitempty"` // ISO day
	RowNumber          int             `json:"row_number"`
	Disposition        Disposition     `json:"disposition"`

	// Components holds per-label contributions read from revenue and fee
	// columns; labels are defined by the platform's label registry.
	Components map[string]decimal.Decimal `json:"components,omitempty"`

	HashID string `json:"hash_id,omitempty"`
}
