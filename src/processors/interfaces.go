package processors

import (
	"github.com/username/salesfolio/backend/src/models"
)

// BreakdownProcessor folds row components into per-label breakdown groups.
type BreakdownProcessor interface {
	Process(rows []models.ClassifiedRow) []models.BreakdownGroup
}

// TimeSeriesProcessor folds settled rows into daily buckets keyed by order
// date and by payment date.
type TimeSeriesProcessor interface {
	Process(rows []models.ClassifiedRow) (perDay, perDayAlt []models.DailyBucket)
}

// AggregationProcessor runs every aggregation pass over one row set.
type AggregationProcessor interface {
	Aggregate(rows []models.ClassifiedRow) models.AggregateResult
}

// ReconcileProcessor deduplicates the rows of one uploaded batch.
type ReconcileProcessor interface {
	Process(rows []models.ClassifiedRow) (kept []models.ClassifiedRow, removed int)
}
