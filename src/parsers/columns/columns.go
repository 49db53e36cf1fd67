// Package columns binds a platform's logical fields to the header names
// actually present in one uploaded spreadsheet.
package columns

import (
	"errors"
	"fmt"
	"strings"

	"github.com/username/salesfolio/backend/src/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrMissingColumns is matched by every *MissingColumnsError.
var ErrMissingColumns = errors.New("missing required columns")

// Field is one logical field and the header spellings accepted for it,
// in preference order.
type Field struct {
	Name     string
	Aliases  []string
	Optional bool
}

// Schema is the immutable field table of one platform.
type Schema struct {
	Platform models.Platform
	Fields   []Field
}

// MissingColumnsError names every required field that had no matching header.
type MissingColumnsError struct {
	Platform models.Platform
	Fields   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Platform, ErrMissingColumns.Error(), strings.Join(e.Fields, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// Resolved maps logical field names to the header found in the current file.
type Resolved map[string]string

// Has reports whether the field was bound to a header.
func (r Resolved) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Get returns the cell for a logical field, or "" when the field is absent.
func (r Resolved) Get(row models.RawRow, field string) string {
	header, ok := r[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(row.Cells[header])
}

// Normalize folds case and collapses internal whitespace runs.
func Normalize(s string) string {
	// Casers keep state; one per call keeps concurrent parses independent.
	s = cases.Fold().String(norm.NFC.String(s))
	return strings.Join(strings.Fields(s), " ")
}

// Resolve binds each field of the schema to the first alias present in
// headers. Optional fields that do not resolve are left out; all missing
// required fields are reported together.
func Resolve(schema Schema, headers []string) (Resolved, error) {
	present := make(map[string]string, len(headers))
	for _, h := range headers {
		key := Normalize(h)
		if key == "" {
			continue
		}
		if _, seen := present[key]; !seen {
			present[key] = h
		}
	}

	resolved := make(Resolved, len(schema.Fields))
	var missing []string
	for _, f := range schema.Fields {
		found := false
		for _, alias := range f.Aliases {
			if header, ok := present[Normalize(alias)]; ok {
				resolved[f.Name] = header
				found = true
				break
			}
		}
		if !found && !f.Optional {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Platform: schema.Platform, Fields: missing}
	}
	return resolved, nil
}
