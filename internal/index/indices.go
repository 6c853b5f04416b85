package index

import (
	"sort"

	"github.com/temirov/accessaudit/internal/records"
)

// Indices are the secondary lookups derived from one snapshot.
type Indices struct {
	// GroupsByBadge unions every indexable assignment of a badge.
	GroupsByBadge map[string]GroupSet
	// AssignmentsByBadge keeps the indexable assignment rows per badge in input order.
	AssignmentsByBadge map[string][]records.AccessAssignment
	// UserByBadge resolves a badge to its user; the last user row claiming the badge wins.
	UserByBadge map[string]records.User
	// UsersByBadge lists every user claiming a badge in input order.
	UsersByBadge map[string][]records.User
	// DevicesByIP lists the device identifiers recorded for each non-blank IP address.
	DevicesByIP map[string][]string
}

// Build derives Indices from the store in a single pass over each collection.
func Build(store records.Store) Indices {
	indices := Indices{
		GroupsByBadge:      make(map[string]GroupSet),
		AssignmentsByBadge: make(map[string][]records.AccessAssignment),
		UserByBadge:        make(map[string]records.User, len(store.Users)),
		UsersByBadge:       make(map[string][]records.User, len(store.Users)),
		DevicesByIP:        make(map[string][]string, len(store.Devices)),
	}

	for _, assignment := range store.Assignments {
		if !assignment.Indexable() {
			continue
		}
		indices.GroupsByBadge[assignment.BadgeID] = indices.GroupsByBadge[assignment.BadgeID].with(assignment.AccessGroup)
		indices.AssignmentsByBadge[assignment.BadgeID] = append(indices.AssignmentsByBadge[assignment.BadgeID], assignment)
	}

	for _, user := range store.Users {
		if !user.HasBadge() {
			continue
		}
		indices.UserByBadge[user.BadgeID] = user
		indices.UsersByBadge[user.BadgeID] = append(indices.UsersByBadge[user.BadgeID], user)
	}

	for _, device := range store.Devices {
		if len(device.IPAddress) == 0 {
			continue
		}
		indices.DevicesByIP[device.IPAddress] = append(indices.DevicesByIP[device.IPAddress], device.DeviceID)
	}

	return indices
}

// AssignedBadges returns every badge holding at least one access group, ascending.
func (indices Indices) AssignedBadges() []string {
	return sortedKeys(indices.GroupsByBadge)
}

// ClaimedBadges returns every badge claimed by at least one user, ascending.
func (indices Indices) ClaimedBadges() []string {
	return sortedKeys(indices.UsersByBadge)
}

// AddressedIPs returns every IP address recorded on a device, ascending.
func (indices Indices) AddressedIPs() []string {
	return sortedKeys(indices.DevicesByIP)
}

// Owner returns the user tied to the badge, if any.
func (indices Indices) Owner(badgeID string) (records.User, bool) {
	user, found := indices.UserByBadge[badgeID]
	return user, found
}

func sortedKeys[Value any](lookup map[string]Value) []string {
	keys := make([]string, 0, len(lookup))
	for key := range lookup {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
