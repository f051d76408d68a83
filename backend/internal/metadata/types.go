package metadata

// LabelCount reports how many nodes in the store carry a given label.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// RelationshipTypeCount reports how many relationships of a given type exist.
type RelationshipTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// Inventory is the full metadata snapshot of the store: every node label and
// relationship type with at least one occurrence, each exactly once. Both
// lists come from the same read transaction.
type Inventory struct {
	NodeLabels        []LabelCount            `json:"nodeLabels"`
	RelationshipTypes []RelationshipTypeCount `json:"relationshipTypes"`
}

// LabelNames returns just the label strings, in inventory order.
func (inv *Inventory) LabelNames() []string {
	names := make([]string, 0, len(inv.NodeLabels))
	for _, l := range inv.NodeLabels {
		names = append(names, l.Label)
	}
	return names
}

// TypeNames returns just the relationship type strings, in inventory order.
func (inv *Inventory) TypeNames() []string {
	names := make([]string, 0, len(inv.RelationshipTypes))
	for _, t := range inv.RelationshipTypes {
		names = append(names, t.Type)
	}
	return names
}
