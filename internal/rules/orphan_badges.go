package rules

import (
	"fmt"

	"github.com/temirov/accessaudit/internal/index"
	"github.com/temirov/accessaudit/internal/records"
)

const (
	orphanBadgeRuleName           = "orphan-badges"
	orphanBadgeMessageTemplate    = "badge=%s has groups=%s but no matching user record"
	nonActiveBadgeMessageTemplate = "badge=%s has groups=%s but is not tied to an ACTIVE user (review)"
)

// OrphanBadgeRule classifies assigned badges as orphan (no user record) or
// non-active (user record whose status is not ACTIVE). The two are exclusive.
type OrphanBadgeRule struct{}

// Name identifies the rule.
func (OrphanBadgeRule) Name() string {
	return orphanBadgeRuleName
}

// Evaluate inspects every badge that holds at least one access group.
func (OrphanBadgeRule) Evaluate(store records.Store, indices index.Indices) []Finding {
	var findings []Finding
	for _, badgeID := range indices.AssignedBadges() {
		groups := formatList(indices.GroupsByBadge[badgeID].Sorted())

		owner, ownerFound := indices.Owner(badgeID)
		switch {
		case !ownerFound:
			findings = append(findings, Finding{
				Category: CategoryOrphanBadge,
				Subject:  badgeID,
				Message:  fmt.Sprintf(orphanBadgeMessageTemplate, badgeID, groups),
			})
		case !owner.IsActive():
			findings = append(findings, Finding{
				Category: CategoryNonActiveBadge,
				Subject:  badgeID,
				Message:  fmt.Sprintf(nonActiveBadgeMessageTemplate, badgeID, groups),
			})
		}
	}
	return findings
}
