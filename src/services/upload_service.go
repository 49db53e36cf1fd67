package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/salesfolio/backend/src/geo"
	"github.com/username/salesfolio/backend/src/logger"
	"github.com/username/salesfolio/backend/src/model"
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers"
	"github.com/username/salesfolio/backend/src/processors"
)

const (
	ckCodeMap         = "codemap_%s"
	ckProvinceAliases = "province_aliases"
	ckMetrics         = "metrics_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type uploadServiceImpl struct {
	sales       SalesStore
	mappings    MappingStore
	reconcile   processors.ReconcileProcessor
	aggregation processors.AggregationProcessor
	provinces   *geo.Table
	reportCache *cache.Cache

	// One upload per platform at a time: the metrics document is rebuilt
	// from everything stored for the platform.
	locks sync.Map

	now   func() time.Time
	newID func() string
}

func NewUploadService(
	sales SalesStore,
	mappings MappingStore,
	reconcile processors.ReconcileProcessor,
	aggregation processors.AggregationProcessor,
	reportCache *cache.Cache,
) UploadService {
	return &uploadServiceImpl{
		sales:       sales,
		mappings:    mappings,
		reconcile:   reconcile,
		aggregation: aggregation,
		provinces:   geo.NewTable(),
		reportCache: reportCache,
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

// ProcessUpload parses one settlement file, stores its settled rows and
// rebuilds the platform's metrics document from all stored rows.
func (s *uploadServiceImpl) ProcessUpload(ctx context.Context, platform models.Platform, data []byte, strict bool) (*UploadResult, error) {
	overallStartTime := time.Now()
	uploadID := s.newID()
	log := logger.L.With("uploadID", uploadID, "platform", platform)
	ctx = logger.WithLogger(ctx, log)
	log.Info("ProcessUpload START", "bytes", len(data), "strict", strict)

	parser, err := parsers.GetParser(platform, s.provinces)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPlatform, err)
	}

	codeMap, err := s.codeMap(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	aliases, err := s.provinceAliases(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	parsed, err := parser.Parse(data, parsers.Options{
		StrictCodeMapping: strict,
		CodeMap:           codeMap,
		ProvinceAliases:   aliases,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingFailed, err)
	}

	kept, removed := s.reconcile.Process(parsed.Rows)
	summary := parsed.Summary
	if removed > 0 {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("%d duplicate rows removed", removed))
		log.Warn("Duplicate rows removed from upload", "removed", removed)
	}

	records := make([]models.SaleRecord, 0, len(kept))
	for _, row := range kept {
		if row.Disposition.Settled() {
			records = append(records, models.NewSaleRecord(row, uploadID))
		}
	}

	mu := s.platformLock(platform)
	mu.Lock()
	defer mu.Unlock()

	changed, err := s.sales.UpsertSales(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	doc, err := s.rebuildMetrics(ctx, platform, uploadID)
	if err != nil {
		return nil, err
	}

	log.Info("ProcessUpload END",
		"rows", summary.TotalRows,
		"recordsStored", len(records),
		"recordsChanged", changed,
		"duplicatesRemoved", removed,
		"warnings", len(summary.Warnings),
		"duration", time.Since(overallStartTime))

	return &UploadResult{
		UploadID:          uploadID,
		Platform:          platform,
		Summary:           summary,
		UnresolvedCodes:   parsed.UnresolvedCodes,
		DuplicatesRemoved: removed,
		RecordsStored:     len(records),
		RecordsChanged:    changed,
		FileTotals:        s.aggregation.Aggregate(kept),
		Metrics:           doc,
	}, nil
}

// rebuildMetrics aggregates every stored record of the platform and replaces
// its metrics document. Callers hold the platform lock.
func (s *uploadServiceImpl) rebuildMetrics(ctx context.Context, platform models.Platform, uploadID string) (*models.MetricsDocument, error) {
	stored, err := s.sales.ListSales(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	rows := make([]models.ClassifiedRow, 0, len(stored))
	for _, r := range stored {
		rows = append(rows, r.Row())
	}

	doc := models.NewMetricsDocument(platform, s.aggregation.Aggregate(rows), uploadID, s.now().UTC())
	if err := s.sales.UpsertMetrics(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	s.reportCache.Set(fmt.Sprintf(ckMetrics, platform), &doc, DefaultCacheExpiration)
	logger.FromContext(ctx).Info("Metrics document rebuilt", "storedRecords", len(stored))
	return &doc, nil
}

// GetMetrics returns the stored metrics document of a platform.
func (s *uploadServiceImpl) GetMetrics(ctx context.Context, platform models.Platform) (*models.MetricsDocument, error) {
	cacheKey := fmt.Sprintf(ckMetrics, platform)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for GetMetrics", "platform", platform)
		return cached.(*models.MetricsDocument), nil
	}
	logger.L.Debug("Cache miss for GetMetrics, loading from store", "platform", platform)

	doc, err := s.sales.GetMetrics(ctx, platform)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMetricsNotFound, platform)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	s.reportCache.Set(cacheKey, doc, DefaultCacheExpiration)
	return doc, nil
}

// InvalidatePlatformCache drops cached mappings and metrics so the next
// request reads them from the store.
func (s *uploadServiceImpl) InvalidatePlatformCache(platform models.Platform) {
	keysToDelete := []string{
		fmt.Sprintf(ckCodeMap, platform),
		fmt.Sprintf(ckMetrics, platform),
		ckProvinceAliases,
	}
	for _, key := range keysToDelete {
		s.reportCache.Delete(key)
	}
	logger.L.Info("Invalidated caches for platform", "platform", platform)
}

func (s *uploadServiceImpl) codeMap(ctx context.Context, platform models.Platform) (map[string]string, error) {
	cacheKey := fmt.Sprintf(ckCodeMap, platform)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(map[string]string), nil
	}
	m, err := s.mappings.CodeMap(ctx, platform)
	if err != nil {
		return nil, err
	}
	s.reportCache.Set(cacheKey, m, cache.DefaultExpiration)
	logger.FromContext(ctx).Debug("Loaded code map", "codes", len(m))
	return m, nil
}

func (s *uploadServiceImpl) provinceAliases(ctx context.Context) (map[string][]string, error) {
	if cached, found := s.reportCache.Get(ckProvinceAliases); found {
		return cached.(map[string][]string), nil
	}
	aliases, err := s.mappings.ProvinceAliases(ctx)
	if err != nil {
		return nil, err
	}
	s.reportCache.Set(ckProvinceAliases, aliases, cache.DefaultExpiration)
	return aliases, nil
}

func (s *uploadServiceImpl) platformLock(platform models.Platform) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(platform, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
