package rules

import (
	"fmt"

	"github.com/temirov/accessaudit/internal/index"
	"github.com/temirov/accessaudit/internal/records"
)

const (
	inactiveAccessRuleName            = "inactive-user-access"
	highRiskVisibilityRuleName        = "high-risk-visibility"
	inactiveWithAccessMessageTemplate = "%s badge=%s has groups=%s (last_day=%s)"
	highRiskVisibilityMessageTemplate = "%s badge=%s high_risk_groups=%s"
)

// InactiveAccessRule flags INACTIVE users whose badge still holds access groups.
type InactiveAccessRule struct{}

// Name identifies the rule.
func (InactiveAccessRule) Name() string {
	return inactiveAccessRuleName
}

// Evaluate visits badges claimed by users in ascending order.
func (InactiveAccessRule) Evaluate(store records.Store, indices index.Indices) []Finding {
	var findings []Finding
	for _, badgeID := range indices.ClaimedBadges() {
		user, found := indices.Owner(badgeID)
		if !found || user.Status != records.StatusInactive {
			continue
		}
		groups, holdsAccess := indices.GroupsByBadge[badgeID]
		if !holdsAccess || groups.Len() == 0 {
			continue
		}

		lastDay := user.LastDay
		if len(lastDay) == 0 {
			lastDay = unknownLastDayConstant
		}
		findings = append(findings, Finding{
			Category: CategoryInactiveUserWithAccess,
			Subject:  badgeID,
			Message:  fmt.Sprintf(inactiveWithAccessMessageTemplate, describeUser(user), badgeID, formatList(groups.Sorted()), lastDay),
		})
	}
	return findings
}

// HighRiskVisibilityRule lists high-risk group holders for information only.
type HighRiskVisibilityRule struct{}

// Name identifies the rule.
func (HighRiskVisibilityRule) Name() string {
	return highRiskVisibilityRuleName
}

// Evaluate lists every assigned badge holding a high-risk group.
func (HighRiskVisibilityRule) Evaluate(store records.Store, indices index.Indices) []Finding {
	var findings []Finding
	highRisk := HighRiskGroups()
	for _, badgeID := range indices.AssignedBadges() {
		risky := indices.GroupsByBadge[badgeID].Intersection(highRisk)
		if len(risky) == 0 {
			continue
		}
		owner, ownerFound := indices.Owner(badgeID)
		findings = append(findings, Finding{
			Category: CategoryHighRiskVisibility,
			Subject:  badgeID,
			Message:  fmt.Sprintf(highRiskVisibilityMessageTemplate, describeOwner(owner, ownerFound), badgeID, formatList(risky)),
		})
	}
	return findings
}
