package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is the storage shape of a settled ClassifiedRow. The composite
// (Platform, ExternalID, ProductCode, RecordType) is unique in storage.
type SaleRecord struct {
	ID                 int64           `json:"id,omitempty"`
	HashID             string          `json:"hash_id"`
	Platform           Platform        `json:"platform"`
	ExternalID         string          `json:"external_id"`
	ProductCode        string          `json:"product_code"`
	RecordType         string          `json:"record_type"` // sale, return
	OrderID            string          `json:"order_id"`
	ProductName        string          `json:"product_name"`
	Quantity           int             `json:"quantity"`
	QuantityReturned   int             `json:"quantity_returned"`
	Revenue            decimal.Decimal `json:"revenue"`
	Fees               decimal.Decimal `json:"fees"`
	Adjustments        decimal.Decimal `json:"adjustments"`
	ProvinceNormalized string          `json:"province"`
	OrderDate          string          `json:"order_date"`
	PaymentDate        string          `json:"payment_date"`
	UploadID           string          `json:"upload_id"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Components map[string]decimal.Decimal `json:"components,omitempty"`
}

// NewSaleRecord converts a settled row to its storage shape.
func NewSaleRecord(row ClassifiedRow, uploadID string) SaleRecord {
	return SaleRecord{
		HashID:             row.HashID,
		Platform:           row.Platform,
		ExternalID:         row.ExternalID,
		ProductCode:        row.ProductCode,
		RecordType:         row.Disposition.RecordType(),
		OrderID:            row.OrderID,
		ProductName:        row.ProductName,
		Quantity:           row.QuantityConfirmed,
		QuantityReturned:   row.QuantityReturned,
		Revenue:            row.RevenueConfirmed,
		Fees:               row.Fees,
		Adjustments:        row.Adjustments,
		ProvinceNormalized: row.ProvinceNormalized,
		OrderDate:          row.OrderDate,
		PaymentDate:        row.PaymentDate,
		UploadID:           uploadID,
		Components:         row.Components,
	}
}

// Row rebuilds the classified row a stored record was created from.
func (r SaleRecord) Row() ClassifiedRow {
	disposition := DispositionConfirmed
	if r.RecordType == DispositionReturned.RecordType() {
		disposition = DispositionReturned
	}
	return ClassifiedRow{
		Platform:           r.Platform,
		ExternalID:         r.ExternalID,
		OrderID:            r.OrderID,
		ProductCode:        r.ProductCode,
		ProductName:        r.ProductName,
		QuantityConfirmed:  r.Quantity,
		QuantityReturned:   r.QuantityReturned,
		RevenueConfirmed:   r.Revenue,
		Fees:               r.Fees,
		Adjustments:        r.Adjustments,
		ProvinceNormalized: r.ProvinceNormalized,
		OrderDate:          r.OrderDate,
		PaymentDate:        r.PaymentDate,
		Disposition:        disposition,
		Components:         r.Components,
		HashID:             r.HashID,
	}
}

// MetricsDocument is the per-platform document handed to the metrics store.
type MetricsDocument struct {
	Platform    Platform         `json:"platform"`
	Revenue     decimal.Decimal  `json:"revenue"`
	Fees        decimal.Decimal  `json:"fees"`
	Adjustments decimal.Decimal  `json:"adjustments"`
	Settlement  decimal.Decimal  `json:"settlement"`
	Breakdown   []BreakdownGroup `json:"breakdown"`
	Trend       TrendWindow      `json:"trend"`
	PerDay      []DailyBucket    `json:"per_day"`
	PerDayAlt   []DailyBucket    `json:"per_day_alt"`
	UploadID    string           `json:"upload_id"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewMetricsDocument builds the metrics document for one aggregation run.
func NewMetricsDocument(platform Platform, agg AggregateResult, uploadID string, now time.Time) MetricsDocument {
	return MetricsDocument{
		Platform:    platform,
		Revenue:     agg.Revenue,
		Fees:        agg.Fees,
		Adjustments: agg.Adjustments,
		Settlement:  agg.Settlement,
		Breakdown:   agg.Breakdown,
		Trend:       TrendWindow{Dates: agg.TrendDates, Values: agg.Trend},
		PerDay:      agg.PerDay,
		PerDayAlt:   agg.PerDayAlt,
		UploadID:    uploadID,
		UpdatedAt:   now,
	}
}
