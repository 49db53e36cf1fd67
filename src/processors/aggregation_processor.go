package processors

import (
	"github.com/shopspring/decimal"
	"github.com/username/salesfolio/backend/src/models"
)

type aggregationProcessorImpl struct {
	breakdown  BreakdownProcessor
	timeSeries TimeSeriesProcessor
}

func NewAggregationProcessor(breakdown BreakdownProcessor, timeSeries TimeSeriesProcessor) AggregationProcessor {
	return &aggregationProcessorImpl{breakdown: breakdown, timeSeries: timeSeries}
}

// Aggregate runs the breakdown and time-series passes over the same rows.
// Both passes only add exact decimals, so the result does not depend on row
// order.
func (p *aggregationProcessorImpl) Aggregate(rows []models.ClassifiedRow) models.AggregateResult {
	result := models.AggregateResult{
		Revenue:     decimal.Zero,
		Fees:        decimal.Zero,
		Adjustments: decimal.Zero,
	}

	result.Breakdown = p.breakdown.Process(rows)
	result.FeeGroups = FilterGroups(result.Breakdown, models.GroupFees)
	result.RevenueGroups = FilterGroups(result.Breakdown, models.GroupRevenue)

	result.PerDay, result.PerDayAlt = p.timeSeries.Process(rows)
	trend := Trend(result.PerDay)
	result.Trend = trend.Values
	result.TrendDates = trend.Dates

	for _, row := range rows {
		if !row.Disposition.Settled() {
			continue
		}
		result.Revenue = result.Revenue.Add(row.RevenueConfirmed)
		result.Fees = result.Fees.Add(row.Fees)
		result.Adjustments = result.Adjustments.Add(row.Adjustments)
	}
	result.Settlement = result.Revenue.Add(result.Fees).Add(result.Adjustments)
	return result
}
