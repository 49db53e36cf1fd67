package services

import (
	"context"

	"github.com/username/salesfolio/backend/src/models"
)

// SalesStore persists reconciled sale records and per-platform metrics.
type SalesStore interface {
	UpsertSales(ctx context.Context, records []models.SaleRecord) (int, error)
	ListSales(ctx context.Context, platform models.Platform) ([]models.SaleRecord, error)
	UpsertMetrics(ctx context.Context, doc models.MetricsDocument) error
	GetMetrics(ctx context.Context, platform models.Platform) (*models.MetricsDocument, error)
}

// MappingStore supplies product code maps and province alias overrides.
type MappingStore interface {
	CodeMap(ctx context.Context, platform models.Platform) (map[string]string, error)
	ProvinceAliases(ctx context.Context) (map[string][]string, error)
}

// UploadResult is returned for one processed settlement file.
type UploadResult struct {
	UploadID          string                  `json:"upload_id"`
	Platform          models.Platform         `json:"platform"`
	Summary           models.ParseSummary     `json:"summary"`
	UnresolvedCodes   []string                `json:"unresolved_codes"`
	DuplicatesRemoved int                     `json:"duplicates_removed"`
	RecordsStored     int                     `json:"records_stored"`
	RecordsChanged    int                     `json:"records_changed"`
	FileTotals        models.AggregateResult  `json:"file_totals"`
	Metrics           *models.MetricsDocument `json:"metrics"`
}

// UploadService defines the upload and reporting logic behind the HTTP API.
type UploadService interface {
	ProcessUpload(ctx context.Context, platform models.Platform, data []byte, strict bool) (*UploadResult, error)
	GetMetrics(ctx context.Context, platform models.Platform) (*models.MetricsDocument, error)
	InvalidatePlatformCache(platform models.Platform)
}
