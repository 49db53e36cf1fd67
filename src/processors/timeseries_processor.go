package processors

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/utils"
)

// TrendWindowSize is the number of most recent active days in a trend.
const TrendWindowSize = 7

type timeSeriesProcessorImpl struct{}

func NewTimeSeriesProcessor() TimeSeriesProcessor {
	return &timeSeriesProcessorImpl{}
}

// Process buckets settled rows by order date and, independently, by payment
// date (falling back to the order date). Rows without a date are not
// bucketed. Buckets are returned in ascending date order without gap filling.
func (p *timeSeriesProcessorImpl) Process(rows []models.ClassifiedRow) ([]models.DailyBucket, []models.DailyBucket) {
	byOrder := make(map[string]*models.DailyBucket)
	byPayment := make(map[string]*models.DailyBucket)

	for _, row := range rows {
		if !row.Disposition.Settled() {
			continue
		}
		if row.OrderDate != "" {
			addToBucket(byOrder, row.OrderDate, row)
		}
		alt := row.PaymentDate
		if alt == "" {
			alt = row.OrderDate
		}
		if alt != "" {
			addToBucket(byPayment, alt, row)
		}
	}
	return sortedBuckets(byOrder), sortedBuckets(byPayment)
}

func addToBucket(buckets map[string]*models.DailyBucket, date string, row models.ClassifiedRow) {
	b, ok := buckets[date]
	if !ok {
		b = &models.DailyBucket{Date: date}
		buckets[date] = b
	}
	b.Revenue = b.Revenue.Add(row.RevenueConfirmed)
	b.Fees = b.Fees.Add(row.Fees)
	b.Adjustments = b.Adjustments.Add(row.Adjustments)
}

func sortedBuckets(buckets map[string]*models.DailyBucket) []models.DailyBucket {
	out := make([]models.DailyBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Trend reduces the last TrendWindowSize buckets to parallel date and total
// arrays. The window counts active days, not calendar days.
func Trend(buckets []models.DailyBucket) models.TrendWindow {
	n := utils.MinInt(TrendWindowSize, len(buckets))
	window := buckets[len(buckets)-n:]

	trend := models.TrendWindow{
		Dates:  make([]string, 0, n),
		Values: make([]decimal.Decimal, 0, n),
	}
	for _, b := range window {
		trend.Dates = append(trend.Dates, b.Date)
		trend.Values = append(trend.Values, b.Total())
	}
	return trend
}
