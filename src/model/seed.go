package model

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/username/salesfolio/backend/src/logger"
	"github.com/username/salesfolio/backend/src/models"
	"gopkg.in/yaml.v3"
)

// SeedData is the layout of the seed file:
//
//	code_mappings:
//	  shopee:
//	    "KL0-4008,KL0-4010": Kettle Bundle
//	province_aliases:
//	  เชียงใหม่: [cnx, chiangmai city]
type SeedData struct {
	CodeMappings    map[string]map[string]string `yaml:"code_mappings"`
	ProvinceAliases map[string][]string          `yaml:"province_aliases"`
}

// ParseSeedData decodes a seed document and rejects unknown platforms.
func ParseSeedData(data []byte) (*SeedData, error) {
	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("invalid seed document: %w", err)
	}
	for name := range seed.CodeMappings {
		if _, ok := models.ParsePlatform(name); !ok {
			return nil, fmt.Errorf("invalid seed document: unknown platform %q", name)
		}
	}
	return &seed, nil
}

// Apply writes the seed data through the store. Existing code mappings are
// overwritten; existing aliases are kept.
func (d *SeedData) Apply(ctx context.Context, store *MappingStore) error {
	platforms := make([]string, 0, len(d.CodeMappings))
	for name := range d.CodeMappings {
		platforms = append(platforms, name)
	}
	sort.Strings(platforms)

	for _, name := range platforms {
		platform, _ := models.ParsePlatform(name)
		codes := d.CodeMappings[name]
		keys := make([]string, 0, len(codes))
		for code := range codes {
			keys = append(keys, code)
		}
		sort.Strings(keys)

		batch := make([]CodeMapping, 0, len(keys))
		for _, code := range keys {
			batch = append(batch, CodeMapping{Platform: platform, ExternalCode: code, CanonicalName: codes[code]})
		}
		if err := store.UpsertCodeMappings(ctx, batch); err != nil {
			return err
		}
	}

	provinces := make([]string, 0, len(d.ProvinceAliases))
	for name := range d.ProvinceAliases {
		provinces = append(provinces, name)
	}
	sort.Strings(provinces)
	for _, name := range provinces {
		if err := store.AddProvinceAliases(ctx, name, d.ProvinceAliases[name]); err != nil {
			return err
		}
	}
	return nil
}

// SeedFromFile loads the YAML file at path into the store.
func SeedFromFile(ctx context.Context, store *MappingStore, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	seed, err := ParseSeedData(data)
	if err != nil {
		return err
	}
	if err := seed.Apply(ctx, store); err != nil {
		return err
	}
	logger.L.Info("Seed data loaded", "path", path,
		"platforms", len(seed.CodeMappings), "provinces", len(seed.ProvinceAliases))
	return nil
}
