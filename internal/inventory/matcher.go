package inventory

import "strings"

// Matcher decides whether a job/event material name refers to a stocked item.
// The default is deliberately loose so ad-hoc material names still deduct
// from a similarly named item; swap in ExactMatcher for stricter setups.
type Matcher interface {
	Match(materialName, itemName string) bool
}

// ContainsMatcher matches when the item name contains the material name,
// case-insensitively. "paint" matches "Wall Paint (white)".
type ContainsMatcher struct{}

func (ContainsMatcher) Match(materialName, itemName string) bool {
	materialName = strings.TrimSpace(strings.ToLower(materialName))
	if materialName == "" {
		return false
	}

	return strings.Contains(strings.ToLower(itemName), materialName)
}

// ExactMatcher matches on the full name, ignoring case and surrounding space.
type ExactMatcher struct{}

func (ExactMatcher) Match(materialName, itemName string) bool {
	return strings.EqualFold(strings.TrimSpace(materialName), strings.TrimSpace(itemName))
}
