// Package codemap resolves marketplace product codes to canonical product
// names.
package codemap

import (
	"regexp"
	"sort"
	"strings"
)

var (
	componentSplit = regexp.MustCompile(`[,\n\r]+`)
	prefixPattern  = regexp.MustCompile(`^[A-Za-z]+\d*-`)
	numericPattern = regexp.MustCompile(`^\d+$`)
)

// Components splits a possibly multi-valued code into trimmed, non-empty parts.
func Components(code string) []string {
	var parts []string
	for _, p := range componentSplit.Split(code, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// NormalizeCode canonicalises a multi-valued code. The prefix of the first
// prefixed component (letters, optional digits, dash) is applied to purely
// numeric siblings, then the parts are sorted and joined with commas:
//
//	"KL0-4010, 4008" -> "KL0-4008,KL0-4010"
//	"4008,KL0-4010"  -> "KL0-4008,KL0-4010"
func NormalizeCode(code string) string {
	parts := Components(code)
	if len(parts) == 0 {
		return ""
	}
	var prefix string
	for _, p := range parts {
		if prefix = prefixPattern.FindString(p); prefix != "" {
			break
		}
	}
	if prefix != "" {
		for i, p := range parts {
			if numericPattern.MatchString(p) {
				parts[i] = prefix + p
			}
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// Resolver holds the lookup indices built from one code map. It is built once
// per parse run and never modified afterwards.
type Resolver struct {
	exact      map[string]string
	normalized map[string]string
	individual map[string]string

	unresolved map[string]struct{}
}

// NewResolver builds the exact, normalized and per-component indices. Keys are
// visited in sorted order so collisions resolve the same way on every run.
func NewResolver(mapping map[string]string) *Resolver {
	r := &Resolver{
		exact:      make(map[string]string, len(mapping)),
		normalized: make(map[string]string, len(mapping)),
		individual: make(map[string]string),
		unresolved: make(map[string]struct{}),
	}

	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, code := range keys {
		name := mapping[code]
		r.exact[code] = name
		if n := NormalizeCode(code); n != "" {
			if _, taken := r.normalized[n]; !taken {
				r.normalized[n] = name
			}
		}
		parts := Components(code)
		if len(parts) < 2 {
			continue
		}
		for _, p := range parts {
			if _, taken := r.individual[p]; !taken {
				r.individual[p] = name
			}
		}
	}
	return r
}

// Resolve returns the canonical name for a code, trying the exact, normalized
// and individual-component indices in that order. A miss is remembered.
func (r *Resolver) Resolve(code string) (string, bool) {
	if name, ok := r.exact[code]; ok {
		return name, true
	}
	trimmed := strings.TrimSpace(code)
	if name, ok := r.exact[trimmed]; ok {
		return name, true
	}
	if name, ok := r.normalized[NormalizeCode(code)]; ok {
		return name, true
	}
	if name, ok := r.individual[trimmed]; ok {
		return name, true
	}
	for _, p := range Components(code) {
		if name, ok := r.individual[p]; ok {
			return name, true
		}
	}
	r.unresolved[trimmed] = struct{}{}
	return "", false
}

// Unresolved returns every code that missed all indices, sorted.
func (r *Resolver) Unresolved() []string {
	out := make([]string, 0, len(r.unresolved))
	for c := range r.unresolved {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
