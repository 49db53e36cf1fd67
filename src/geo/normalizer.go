// Package geo maps free-text province strings to canonical Thai province
// names.
package geo

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Province is one canonical province and its cleaned aliases.
type Province struct {
	Name    string
	Aliases []string
}

// Table is an ordered province alias table. Iteration order decides ties
// between provinces whose aliases overlap.
type Table struct {
	provinces []Province
}

// NewTable returns the built-in 77-province table.
func NewTable() *Table {
	t := &Table{provinces: make([]Province, 0, len(builtin))}
	for _, row := range builtin {
		t.provinces = append(t.provinces, newProvince(row[0], row[1:]))
	}
	return t
}

// Len returns the number of canonical provinces in the table.
func (t *Table) Len() int {
	return len(t.provinces)
}

// Merge returns a new table with overrides applied. An override for a known
// province replaces its alias list; unknown provinces are appended in sorted
// order. The receiver is not modified.
func (t *Table) Merge(overrides map[string][]string) *Table {
	if len(overrides) == 0 {
		return t
	}
	merged := &Table{provinces: make([]Province, 0, len(t.provinces)+len(overrides))}
	known := make(map[string]bool, len(t.provinces))
	for _, p := range t.provinces {
		known[p.Name] = true
		if aliases, ok := overrides[p.Name]; ok {
			merged.provinces = append(merged.provinces, newProvince(p.Name, aliases))
			continue
		}
		merged.provinces = append(merged.provinces, p)
	}

	var extra []string
	for name := range overrides {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		merged.provinces = append(merged.provinces, newProvince(name, overrides[name]))
	}
	return merged
}

// Normalize maps a raw province string to its canonical name. Matching is by
// substring in both directions after cleaning, so "Chiang Mai Province" and
// "chiangmai" both resolve; the first matching province in table order wins.
func (t *Table) Normalize(raw string) (string, bool) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return "", false
	}
	for _, p := range t.provinces {
		if strings.EqualFold(cleaned, p.Name) {
			return p.Name, true
		}
	}

	spaceless := strings.ReplaceAll(cleaned, " ", "")
	reverse := len([]rune(cleaned)) >= 3
	for _, p := range t.provinces {
		for _, alias := range p.Aliases {
			if strings.Contains(cleaned, alias) || strings.Contains(spaceless, alias) {
				return p.Name, true
			}
			if reverse && strings.Contains(alias, cleaned) {
				return p.Name, true
			}
		}
	}
	return "", false
}

// Clean lower-cases a province string, strips administrative prefixes and a
// trailing "province", and collapses punctuation and whitespace runs.
func Clean(raw string) string {
	s := strings.ToLower(strings.TrimSpace(norm.NFC.String(raw)))
	for stripped := true; stripped; {
		stripped = false
		for _, prefix := range adminPrefixes {
			if strings.HasPrefix(s, prefix) {
				s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
				stripped = true
			}
		}
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, provinceSuffix))
	return collapse(s)
}

func collapse(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func newProvince(name string, aliases []string) Province {
	p := Province{Name: name}
	seen := make(map[string]bool)
	add := func(a string) {
		if a == "" || seen[a] {
			return
		}
		seen[a] = true
		p.Aliases = append(p.Aliases, a)
	}
	for _, a := range append([]string{name}, aliases...) {
		c := Clean(a)
		add(c)
		add(strings.ReplaceAll(c, " ", ""))
	}
	return p
}
