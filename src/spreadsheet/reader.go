// Package spreadsheet turns an uploaded workbook into ordered RawRows.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/security/validation"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// Format is the detected container format of an uploaded file.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
)

var (
	ErrEmptyFile = errors.New("file is empty")
	ErrNoHeader  = errors.New("no header row found")

	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

// Sheet is the parsed content of the first worksheet of a file.
type Sheet struct {
	Format  Format
	Headers []string
	Rows    []models.RawRow
}

// DetectFormat inspects the leading magic bytes of a file.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS
	default:
		return FormatCSV
	}
}

// Read parses the first sheet of an xlsx, xls or csv file.
func Read(data []byte) (*Sheet, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	format := DetectFormat(data)
	var (
		grid [][]string
		err  error
	)
	switch format {
	case FormatXLSX:
		grid, err = readXLSX(data)
	case FormatXLS:
		grid, err = readXLS(data)
	default:
		grid, err = readCSV(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", format, err)
	}

	sheet, err := FromGrid(grid)
	if err != nil {
		return nil, err
	}
	sheet.Format = format
	return sheet, nil
}

// FromGrid locates the header row in a cell grid and keys each following
// row by header text. The header row is the first row with at least two
// non-empty cells; rows with no content are skipped.
func FromGrid(grid [][]string) (*Sheet, error) {
	headerIdx := -1
	for i, row := range grid {
		if nonEmpty(row) >= 2 {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoHeader
	}

	headers := make([]string, len(grid[headerIdx]))
	for i, h := range grid[headerIdx] {
		headers[i] = CleanHeader(h)
	}

	sheet := &Sheet{Headers: headers}
	for i := headerIdx + 1; i < len(grid); i++ {
		row := grid[i]
		if nonEmpty(row) == 0 {
			continue
		}
		cells := make(map[string]string, len(headers))
		for col, h := range headers {
			if h == "" {
				continue
			}
			if _, dup := cells[h]; dup {
				continue // first column wins for repeated headers
			}
			if col < len(row) {
				cells[h] = strings.TrimSpace(validation.StripUnprintable(row[col]))
			} else {
				cells[h] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, models.RawRow{Line: i + 1, Cells: cells})
	}
	return sheet, nil
}

// CleanHeader normalises header text: NFC, unprintable characters and
// surrounding whitespace removed.
func CleanHeader(h string) string {
	h = strings.TrimSpace(validation.StripUnprintable(h))
	return norm.NFC.String(h)
}

func nonEmpty(row []string) int {
	n := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	// Raw values keep serial dates and unformatted numbers parseable.
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func readXLS(data []byte) ([][]string, error) {
	// xlsReader works with file paths.
	tmp, err := os.CreateTemp("", "settlement-*.xls")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmp.Close()

	book, err := xls.OpenFile(tmp.Name())
	if err != nil {
		return nil, err
	}
	sheet, err := book.GetSheet(0)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, errors.New("workbook has no sheets")
	}

	var grid [][]string
	for _, row := range sheet.GetRows() {
		var vals []string
		for _, col := range row.GetCols() {
			vals = append(vals, col.GetString())
		}
		grid = append(grid, vals)
	}
	return grid, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}
