package material

import "strings"

// Material is a named, quantified, costed line embedded in a job or event.
// Cost is the line total for the full quantity, in cents, not a unit price.
type Material struct {
	Name string
	Qty  int
	Cost int64
}

// SumCost returns the combined line cost of the given materials.
func SumCost(materials []Material) int64 {
	var total int64
	for _, m := range materials {
		total += m.Cost
	}

	return total
}

// QtyByName folds the materials into a per-name quantity map. Names are
// compared case-insensitively, matching how inventory lookups treat them.
func QtyByName(materials []Material) map[string]int {
	qty := make(map[string]int, len(materials))
	for _, m := range materials {
		qty[strings.ToLower(m.Name)] += m.Qty
	}

	return qty
}

// Deltas compares an incoming selection against the current one and returns
// the per-name quantity change. Positive deltas are new consumption; negative
// deltas are reductions.
func Deltas(current, incoming []Material) map[string]int {
	deltas := QtyByName(incoming)
	for name, qty := range QtyByName(current) {
		deltas[name] -= qty
	}

	for name, d := range deltas {
		if d == 0 {
			delete(deltas, name)
		}
	}

	return deltas
}

// Merge replaces lines in current with same-named lines from incoming and
// appends the rest, preserving the order of first appearance.
func Merge(current, incoming []Material) []Material {
	merged := make([]Material, len(current))
	copy(merged, current)

	for _, in := range incoming {
		replaced := false

		for i, m := range merged {
			if strings.EqualFold(m.Name, in.Name) {
				merged[i] = in
				replaced = true

				break
			}
		}

		if !replaced {
			merged = append(merged, in)
		}
	}

	return merged
}
