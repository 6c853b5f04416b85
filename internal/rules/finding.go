package rules

import (
	"github.com/temirov/accessaudit/internal/index"
	"github.com/temirov/accessaudit/internal/records"
)

// Category classifies a finding so that audits can route it to a report section.
type Category string

// Finding categories emitted by the rule set.
const (
	CategoryHighRiskGroups         Category = "high-risk-groups"
	CategoryReviewCombination      Category = "review-combination"
	CategoryOrphanBadge            Category = "orphan-badge"
	CategoryNonActiveBadge         Category = "non-active-badge"
	CategoryActiveUserMissingBadge Category = "active-user-missing-badge"
	CategoryDuplicateBadge         Category = "duplicate-badge"
	CategoryDeviceMissingField     Category = "device-missing-field"
	CategoryActiveDeviceMissingIP  Category = "active-device-missing-ip"
	CategoryDuplicateIP            Category = "duplicate-ip"
	CategoryNamingConvention       Category = "naming-convention"
	CategoryInactiveUserWithAccess Category = "inactive-user-with-access"
	CategoryHighRiskVisibility     Category = "high-risk-visibility"
)

// Finding is a detected condition that needs human review. Findings are not errors.
type Finding struct {
	Category Category
	Subject  string
	Message  string
}

// Rule evaluates one check against a snapshot.
type Rule interface {
	Name() string
	Evaluate(store records.Store, indices index.Indices) []Finding
}

// Evaluate runs the rules in order and concatenates their findings.
func Evaluate(ruleSet []Rule, store records.Store, indices index.Indices) []Finding {
	var findings []Finding
	for _, rule := range ruleSet {
		if rule == nil {
			continue
		}
		findings = append(findings, rule.Evaluate(store, indices)...)
	}
	return findings
}
