package processors

import (
	"github.com/shopspring/decimal"
	"github.com/username/salesfolio/backend/src/models"
)

type breakdownProcessorImpl struct {
	registries map[models.Platform]models.LabelRegistry
}

func NewBreakdownProcessor(registries map[models.Platform]models.LabelRegistry) BreakdownProcessor {
	return &breakdownProcessorImpl{registries: registries}
}

// Process accumulates the components of settled rows per platform and builds
// the breakdown groups of each platform's registry. Zero contributions are
// skipped and labels that end at zero are left out. A parent label with any
// non-zero child always carries the sum of its children.
func (p *breakdownProcessorImpl) Process(rows []models.ClassifiedRow) []models.BreakdownGroup {
	totals := make(map[models.Platform]map[string]decimal.Decimal)
	for _, row := range rows {
		if !row.Disposition.Settled() {
			continue
		}
		acc, ok := totals[row.Platform]
		if !ok {
			acc = make(map[string]decimal.Decimal)
			totals[row.Platform] = acc
		}
		for label, v := range row.Components {
			if v.IsZero() {
				continue
			}
			acc[label] = acc[label].Add(v)
		}
	}

	var groups []models.BreakdownGroup
	for _, platform := range models.Platforms {
		acc, ok := totals[platform]
		if !ok {
			continue
		}
		reg, ok := p.registries[platform]
		if !ok {
			continue
		}
		for _, g := range reg.Groups {
			group := models.BreakdownGroup{Platform: platform, Name: g.Name, Kind: g.Kind}
			for _, label := range g.Labels {
				if node, ok := buildNode(reg, acc, label); ok {
					group.Items = append(group.Items, node)
				}
			}
			if len(group.Items) > 0 {
				groups = append(groups, group)
			}
		}
	}
	return groups
}

func buildNode(reg models.LabelRegistry, acc map[string]decimal.Decimal, label string) (models.BreakdownNode, bool) {
	node := models.BreakdownNode{Label: label, Value: acc[label]}
	if reg.IsParent(label) {
		sum := decimal.Zero
		for _, child := range reg.Children[label] {
			v := acc[child]
			if v.IsZero() {
				continue
			}
			node.Children = append(node.Children, models.BreakdownNode{Label: child, Value: v})
			sum = sum.Add(v)
		}
		if len(node.Children) > 0 {
			node.Value = sum
		}
	}
	if node.Value.IsZero() {
		return models.BreakdownNode{}, false
	}
	return node, true
}

// FilterGroups returns the groups of one kind.
func FilterGroups(groups []models.BreakdownGroup, kind models.GroupKind) []models.BreakdownGroup {
	var out []models.BreakdownGroup
	for _, g := range groups {
		if g.Kind == kind {
			out = append(out, g)
		}
	}
	return out
}
