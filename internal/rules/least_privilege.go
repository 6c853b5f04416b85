package rules

import (
	"fmt"

	"github.com/temirov/accessaudit/internal/index"
	"github.com/temirov/accessaudit/internal/records"
)

const (
	leastPrivilegeRuleName           = "least-privilege"
	highRiskGroupsMessageTemplate    = "%s badge=%s has HIGH-RISK groups: %s"
	reviewCombinationMessageTemplate = "%s badge=%s has REVIEW combo=%s (current=%s)"
)

// LeastPrivilegeRule flags badges holding high-risk groups or a configured review combination.
type LeastPrivilegeRule struct{}

// Name identifies the rule.
func (LeastPrivilegeRule) Name() string {
	return leastPrivilegeRuleName
}

// Evaluate checks every assigned badge against the high-risk set and each review combination.
func (LeastPrivilegeRule) Evaluate(store records.Store, indices index.Indices) []Finding {
	var findings []Finding
	highRisk := HighRiskGroups()
	combinations := ReviewCombinations()

	for _, badgeID := range indices.AssignedBadges() {
		groups := indices.GroupsByBadge[badgeID]
		owner, ownerFound := indices.Owner(badgeID)
		ownerDescription := describeOwnerWithStatus(owner, ownerFound)

		if risky := groups.Intersection(highRisk); len(risky) > 0 {
			findings = append(findings, Finding{
				Category: CategoryHighRiskGroups,
				Subject:  badgeID,
				Message:  fmt.Sprintf(highRiskGroupsMessageTemplate, ownerDescription, badgeID, formatList(risky)),
			})
		}

		for _, combination := range combinations {
			if !groups.IsSupersetOf(combination) {
				continue
			}
			findings = append(findings, Finding{
				Category: CategoryReviewCombination,
				Subject:  badgeID,
				Message:  fmt.Sprintf(reviewCombinationMessageTemplate, ownerDescription, badgeID, formatList(sortedCopy(combination)), formatList(groups.Sorted())),
			})
		}
	}

	return findings
}
