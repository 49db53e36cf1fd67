package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/username/salesfolio/backend/src/models"
)

// CodeMapping is one row of the code_mappings table: an external product
// code of a platform and the canonical product name it stands for.
type CodeMapping struct {
	Platform      models.Platform
	ExternalCode  string
	CanonicalName string
}

// MappingStore reads and writes product code mappings and province aliases.
type MappingStore struct {
	db *sql.DB
}

func NewMappingStore(db *sql.DB) *MappingStore {
	return &MappingStore{db: db}
}

// CodeMap returns every mapping of a platform keyed by external code.
func (s *MappingStore) CodeMap(ctx context.Context, platform models.Platform) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT external_code, canonical_name FROM code_mappings WHERE platform = ?`, platform)
	if err != nil {
		return nil, fmt.Errorf("error querying code mappings for %s: %w", platform, err)
	}
	defer rows.Close()

	mapping := make(map[string]string)
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return nil, fmt.Errorf("error scanning code mapping for %s: %w", platform, err)
		}
		mapping[code] = name
	}
	return mapping, rows.Err()
}

// UpsertCodeMappings stores a batch of mappings in one statement. An existing
// external code of the same platform gets the new canonical name.
func (s *MappingStore) UpsertCodeMappings(ctx context.Context, mappings []CodeMapping) error {
	if len(mappings) == 0 {
		return nil
	}

	query := `INSERT INTO code_mappings (platform, external_code, canonical_name) VALUES (?, ?, ?)` +
		strings.Repeat(", (?, ?, ?)", len(mappings)-1) +
		` ON CONFLICT(platform, external_code) DO UPDATE SET canonical_name = excluded.canonical_name`

	args := make([]interface{}, 0, len(mappings)*3)
	for _, m := range mappings {
		args = append(args, m.Platform, m.ExternalCode, m.CanonicalName)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error upserting %d code mappings: %w", len(mappings), err)
	}
	return nil
}

// ProvinceAliases returns the stored alias overrides keyed by canonical
// province name, aliases in insertion order.
func (s *MappingStore) ProvinceAliases(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT canonical, alias FROM province_aliases ORDER BY canonical, id`)
	if err != nil {
		return nil, fmt.Errorf("error querying province aliases: %w", err)
	}
	defer rows.Close()

	aliases := make(map[string][]string)
	for rows.Next() {
		var canonical, alias string
		if err := rows.Scan(&canonical, &alias); err != nil {
			return nil, fmt.Errorf("error scanning province alias: %w", err)
		}
		aliases[canonical] = append(aliases[canonical], alias)
	}
	return aliases, rows.Err()
}

// AddProvinceAliases records aliases for a canonical province. Aliases that
// already exist are ignored.
func (s *MappingStore) AddProvinceAliases(ctx context.Context, canonical string, aliases []string) error {
	if len(aliases) == 0 {
		return nil
	}

	query := `INSERT INTO province_aliases (canonical, alias) VALUES (?, ?)` +
		strings.Repeat(", (?, ?)", len(aliases)-1) +
		` ON CONFLICT(canonical, alias) DO NOTHING`

	args := make([]interface{}, 0, len(aliases)*2)
	for _, a := range aliases {
		args = append(args, canonical, a)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error adding aliases for province %s: %w", canonical, err)
	}
	return nil
}
