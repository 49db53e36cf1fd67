package parsers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/salesfolio/backend/src/codemap"
	"github.com/username/salesfolio/backend/src/geo"
	"github.com/username/salesfolio/backend/src/logger"
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers/columns"
	"github.com/username/salesfolio/backend/src/spreadsheet"
	"github.com/username/salesfolio/backend/src/utils"
)

// Options are supplied per parse by the caller.
type Options struct {
	// StrictCodeMapping drops rows whose product code has no mapping instead
	// of falling back to the raw code as product name.
	StrictCodeMapping bool
	CodeMap           map[string]string   // external code -> canonical name
	ProvinceAliases   map[string][]string // canonical province -> aliases, overrides the built-in table
}

// Parser runs the full pipeline for one platform. A Parser holds no per-file
// state; every call to Parse builds its own indices and accumulators.
type Parser struct {
	classifier RowClassifier
	provinces  *geo.Table
}

func NewParser(classifier RowClassifier, provinces *geo.Table) *Parser {
	if provinces == nil {
		provinces = geo.NewTable()
	}
	return &Parser{classifier: classifier, provinces: provinces}
}

// GetParser returns a parser for the platform backed by the given province table.
func GetParser(platform models.Platform, provinces *geo.Table) (*Parser, error) {
	c, err := GetClassifier(platform)
	if err != nil {
		return nil, err
	}
	return NewParser(c, provinces), nil
}

// Parse is a convenience wrapper using the built-in province table.
func Parse(platform models.Platform, data []byte, opts Options) (*models.ParseResult, error) {
	p, err := GetParser(platform, nil)
	if err != nil {
		return nil, err
	}
	return p.Parse(data, opts)
}

// Parse reads, classifies and normalises one settlement file. Structural
// problems (unreadable file, missing required columns) abort the parse;
// row-level problems are reported in Summary.Warnings.
func (p *Parser) Parse(data []byte, opts Options) (*models.ParseResult, error) {
	platform := p.classifier.Platform()

	sheet, err := spreadsheet.Read(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", platform, err)
	}
	cols, err := columns.Resolve(p.classifier.Schema(), sheet.Headers)
	if err != nil {
		return nil, err
	}

	cells := utils.NewCellParser()
	classified, warnings := p.classifier.Classify(sheet.Rows, cols, cells)

	resolver := codemap.NewResolver(opts.CodeMap)
	provinces := p.provinces.Merge(opts.ProvinceAliases)
	unmapped := make(map[string]struct{})

	rows := make([]models.ClassifiedRow, 0, len(classified))
	for _, row := range classified {
		// Unsettled rows are counted but never stored, so their codes are left
		// out of resolution and strict mode.
		if !row.Disposition.Settled() {
			if row.ProductName == "" {
				row.ProductName = row.ProductCode
			}
			rows = append(rows, row)
			continue
		}
		if name, ok := resolver.Resolve(row.ProductCode); ok {
			row.ProductName = name
		} else if opts.StrictCodeMapping {
			warnings = append(warnings, fmt.Sprintf("row %d: unmapped product code %q, skipped", row.RowNumber, row.ProductCode))
			continue
		} else {
			row.ProductName = row.ProductCode
		}

		if row.ProvinceRaw != "" {
			if province, ok := provinces.Normalize(row.ProvinceRaw); ok {
				row.ProvinceNormalized = province
			} else {
				unmapped[strings.TrimSpace(row.ProvinceRaw)] = struct{}{}
			}
		}
		rows = append(rows, row)
	}

	for _, w := range warnings {
		logger.L.Debug("Row skipped", "platform", platform, "warning", w)
	}

	result := &models.ParseResult{
		Platform:        platform,
		Rows:            rows,
		Summary:         summarize(rows, warnings, unmapped, cells.Coerced()),
		UnresolvedCodes: resolver.Unresolved(),
	}
	logger.L.Info("Parsed settlement file",
		"platform", platform,
		"format", sheet.Format,
		"rows", result.Summary.TotalRows,
		"warnings", len(result.Summary.Warnings),
		"unresolvedCodes", len(result.UnresolvedCodes),
		"cellsCoercedToZero", result.Summary.CellsCoercedToZero)
	return result, nil
}

func summarize(rows []models.ClassifiedRow, warnings []string, unmapped map[string]struct{}, coerced int) models.ParseSummary {
	s := models.ParseSummary{
		TotalRevenue:       decimal.Zero,
		Warnings:           append([]string{}, warnings...),
		UnmappedProvinces:  make([]string, 0, len(unmapped)),
		CellsCoercedToZero: coerced,
		Dispositions:       make(map[models.Disposition]int),
	}
	for _, r := range rows {
		s.TotalRows++
		s.TotalRevenue = s.TotalRevenue.Add(r.RevenueConfirmed)
		s.TotalQty += r.QuantityConfirmed
		s.TotalReturned += r.QuantityReturned
		s.Dispositions[r.Disposition]++
	}
	for p := range unmapped {
		s.UnmappedProvinces = append(s.UnmappedProvinces, p)
	}
	sort.Strings(s.UnmappedProvinces)
	return s
}
