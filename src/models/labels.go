package models

// GroupKind says how a breakdown group's labels feed row totals.
type GroupKind string

const (
	GroupRevenue     GroupKind = "revenue"
	GroupFees        GroupKind = "fees"
	GroupAdjustments GroupKind = "adjustments"
)

// LabelGroup is a named, ordered set of top-level labels.
type LabelGroup struct {
	Name   string
	Kind   GroupKind
	Labels []string
}

// LabelBinding reads one label's contribution from a logical column.
// Sign +1 forces a credit, -1 a debit, 0 keeps the exported sign.
type LabelBinding struct {
	Label string
	Field string
	Sign  int
}

// LabelRegistry is the static breakdown vocabulary of one platform.
type LabelRegistry struct {
	Platform Platform
	Groups   []LabelGroup
	Children map[string][]string // parent label -> child labels
	Bindings []LabelBinding
}

// GroupOf returns the group that owns a label, either directly or as the child
// of one of the group's labels.
func (r LabelRegistry) GroupOf(label string) (LabelGroup, bool) {
	for _, g := range r.Groups {
		for _, l := range g.Labels {
			if l == label {
				return g, true
			}
			for _, c := range r.Children[l] {
				if c == label {
					return g, true
				}
			}
		}
	}
	return LabelGroup{}, false
}

// IsParent reports whether the label decomposes into children.
func (r LabelRegistry) IsParent(label string) bool {
	return len(r.Children[label]) > 0
}
