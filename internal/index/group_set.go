package index

import "sort"

// GroupSet is the set of access groups held by one badge. Membership is exact
// string equality; insertion order is retained for Members.
type GroupSet struct {
	members    []string
	membership map[string]struct{}
}

// NewGroupSet builds a set from the provided groups, ignoring repeats.
func NewGroupSet(groups ...string) GroupSet {
	set := GroupSet{membership: make(map[string]struct{}, len(groups))}
	for _, group := range groups {
		set = set.with(group)
	}
	return set
}

func (set GroupSet) with(group string) GroupSet {
	if set.membership == nil {
		set.membership = make(map[string]struct{})
	}
	if _, exists := set.membership[group]; exists {
		return set
	}
	set.membership[group] = struct{}{}
	set.members = append(set.members, group)
	return set
}

// Len returns the number of distinct groups.
func (set GroupSet) Len() int {
	return len(set.members)
}

// Contains reports whether the group is held.
func (set GroupSet) Contains(group string) bool {
	_, exists := set.membership[group]
	return exists
}

// Members returns the groups in insertion order.
func (set GroupSet) Members() []string {
	return append([]string(nil), set.members...)
}

// Sorted returns the groups in ascending order.
func (set GroupSet) Sorted() []string {
	sorted := set.Members()
	sort.Strings(sorted)
	return sorted
}

// Intersection returns the held groups that appear in candidates, ascending and without repeats.
func (set GroupSet) Intersection(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	var shared []string
	for _, candidate := range candidates {
		if _, duplicate := seen[candidate]; duplicate {
			continue
		}
		seen[candidate] = struct{}{}
		if set.Contains(candidate) {
			shared = append(shared, candidate)
		}
	}
	sort.Strings(shared)
	return shared
}

// IsSupersetOf reports whether every group in required is held.
func (set GroupSet) IsSupersetOf(required []string) bool {
	for _, group := range required {
		if !set.Contains(group) {
			return false
		}
	}
	return true
}
