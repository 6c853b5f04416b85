package audit

import (
	"github.com/temirov/accessaudit/internal/rules"
	"github.com/temirov/accessaudit/internal/snapshot"
)

// Names of the built-in audits.
const (
	UserRecordsAuditName     = "user-records"
	OrphanBadgesAuditName    = "orphan-badges"
	LeastPrivilegeAuditName  = "least-privilege"
	DeviceInventoryAuditName = "device-inventory"
	AccessIntegrityAuditName = "access-integrity"
)

// UserRecordsAudit validates user directory hygiene.
func UserRecordsAudit() Definition {
	return Definition{
		Name:        UserRecordsAuditName,
		Title:       "USER RECORD INTEGRITY VALIDATION",
		Description: "Flag ACTIVE users without a badge and badges claimed by several users",
		Sources:     []snapshot.Source{snapshot.SourceUsers},
		Rules:       []rules.Rule{rules.UserRecordIntegrityRule{}},
		Sections: []Section{
			{
				Title:      "Findings: ACTIVE users missing badge_id",
				Categories: []rules.Category{rules.CategoryActiveUserMissingBadge},
				Governing:  true,
				Recommendations: []string{
					"Validate source-of-truth records for ACTIVE users missing badge_id (HR vs Security system).",
				},
			},
			{
				Title:      "Findings: Duplicate badge assignments",
				Categories: []rules.Category{rules.CategoryDuplicateBadge},
				Governing:  true,
				Recommendations: []string{
					"Confirm which user physically holds each duplicated badge and reissue or correct the others via the approved provisioning workflow.",
				},
			},
		},
		StandingRecommendations: []string{"Document changes and retain audit trail."},
		CleanRecommendation:     "No user record issues detected. Continue routine audits and spot checks per runbook.",
	}
}

// OrphanBadgesAudit detects access-bearing badges without an ACTIVE owner.
// Only orphan badges govern the status; non-active badges are reported for review.
func OrphanBadgesAudit() Definition {
	return Definition{
		Name:        OrphanBadgesAuditName,
		Title:       "ORPHAN BADGE DETECTION",
		Description: "Flag badges holding access groups without a matching or ACTIVE user",
		Sources:     []snapshot.Source{snapshot.SourceUsers, snapshot.SourceAccessGroups},
		Rules:       []rules.Rule{rules.OrphanBadgeRule{}},
		Sections: []Section{
			{
				Title:      "Findings: Orphan badge IDs",
				Categories: []rules.Category{rules.CategoryOrphanBadge},
				Governing:  true,
				Recommendations: []string{
					"Investigate whether orphan badge IDs represent data entry errors or stale records.",
					"Submit approved change request to correct/remove invalid assignments per SOP.",
				},
			},
			{
				Title:      "Findings: Badge IDs not tied to ACTIVE users",
				Categories: []rules.Category{rules.CategoryNonActiveBadge},
				Governing:  false,
				Recommendations: []string{
					"Confirm employment status of badge owners that are not ACTIVE and request revocation of their access groups if they have left.",
				},
			},
		},
		StandingRecommendations: []string{"Document outcome and retain audit trail."},
		CleanRecommendation:     "No orphaned badge assignments detected. Continue routine audits and spot checks per runbook.",
	}
}

// LeastPrivilegeAudit flags badges holding high-risk groups or review combinations.
func LeastPrivilegeAudit() Definition {
	return Definition{
		Name:        LeastPrivilegeAuditName,
		Title:       "LEAST PRIVILEGE AUDIT",
		Description: "Flag badges holding high-risk access groups or review combinations",
		Sources:     []snapshot.Source{snapshot.SourceUsers, snapshot.SourceAccessGroups},
		Rules:       []rules.Rule{rules.LeastPrivilegeRule{}},
		Sections: []Section{
			{
				Title:      "Findings: High-risk access and review combinations",
				Categories: []rules.Category{rules.CategoryHighRiskGroups, rules.CategoryReviewCombination},
				Governing:  true,
				Recommendations: []string{
					"Verify approvals exist for high-risk access groups.",
					"If approvals are missing/stale, submit change request per SOP.",
				},
			},
		},
		StandingRecommendations: []string{"Document review outcome and retain audit trail."},
		CleanRecommendation:     "No least-privilege findings detected. Continue periodic access reviews per runbook.",
	}
}

// DeviceInventoryAudit validates device inventory records.
func DeviceInventoryAudit() Definition {
	return Definition{
		Name:        DeviceInventoryAuditName,
		Title:       "DEVICE INVENTORY VALIDATION",
		Description: "Flag incomplete device records, missing or duplicate IPs, and naming issues",
		Sources:     []snapshot.Source{snapshot.SourceDeviceInventory},
		Rules:       []rules.Rule{rules.DeviceInventoryRule{}},
		Sections: []Section{
			{
				Title:           "Findings: Missing required fields",
				Categories:      []rules.Category{rules.CategoryDeviceMissingField},
				Governing:       true,
				Recommendations: []string{"Correct inventory records via approved workflow; retain audit trail."},
			},
			{
				Title:           "Findings: ACTIVE devices missing IP",
				Categories:      []rules.Category{rules.CategoryActiveDeviceMissingIP},
				Governing:       true,
				Recommendations: []string{"For missing IPs, verify enrollment/connectivity and update source-of-truth."},
			},
			{
				Title:           "Findings: Duplicate IPs",
				Categories:      []rules.Category{rules.CategoryDuplicateIP},
				Governing:       true,
				Recommendations: []string{"For duplicates, coordinate with local IT/installer to confirm addressing."},
			},
			{
				Title:           "Findings: Naming/labeling issues",
				Categories:      []rules.Category{rules.CategoryNamingConvention},
				Governing:       true,
				Recommendations: []string{"Relabel devices that break the naming/labeling standard and update the inventory record."},
			},
		},
		StandingRecommendations: []string{"Document changes and retain audit trail."},
		CleanRecommendation:     "No device inventory issues detected. Continue routine audits and spot checks per runbook.",
	}
}

// AccessIntegrityAudit is the combined integrity audit. It shares rules with the
// split audits but only inactive access, orphan badges and missing badges govern
// the status; non-active badges and duplicate badges are not part of it, and the
// high-risk listing is informational.
func AccessIntegrityAudit() Definition {
	return Definition{
		Name:        AccessIntegrityAuditName,
		Title:       "ACCESS CONTROL DATA INTEGRITY AUDIT",
		Description: "Combined integrity audit of inactive access, orphan badges, missing badges and high-risk holders",
		Sources:     []snapshot.Source{snapshot.SourceUsers, snapshot.SourceAccessGroups},
		Rules: []rules.Rule{
			rules.InactiveAccessRule{},
			rules.OrphanBadgeRule{},
			rules.UserRecordIntegrityRule{},
			rules.HighRiskVisibilityRule{},
		},
		Sections: []Section{
			{
				Title:      "FINDINGS: Inactive users retaining access",
				Categories: []rules.Category{rules.CategoryInactiveUserWithAccess},
				Governing:  true,
				Recommendations: []string{
					"Submit approved request to revoke access groups for inactive users; document changes and retain audit trail.",
				},
			},
			{
				Title:      "FINDINGS: Orphan badge assignments",
				Categories: []rules.Category{rules.CategoryOrphanBadge},
				Governing:  true,
				Recommendations: []string{
					"Investigate orphan badge IDs: confirm issuance status, correct records, and remove invalid assignments per procedure.",
				},
			},
			{
				Title:      "FINDINGS: Active users missing badge records",
				Categories: []rules.Category{rules.CategoryActiveUserMissingBadge},
				Governing:  true,
				Recommendations: []string{
					"Validate cardholder records for ACTIVE users missing badge_id; correct source-of-truth record per provisioning SOP.",
				},
			},
			{
				Title:      "VISIBILITY: High-risk access group assignments",
				Categories: []rules.Category{rules.CategoryHighRiskVisibility},
				Governing:  false,
			},
		},
		CleanRecommendation: "No issues detected in dataset. Continue routine audits and spot checks per runbook.",
	}
}

// Definitions returns every built-in audit in catalog order.
func Definitions() []Definition {
	return []Definition{
		UserRecordsAudit(),
		OrphanBadgesAudit(),
		LeastPrivilegeAudit(),
		DeviceInventoryAudit(),
		AccessIntegrityAudit(),
	}
}

// LookupDefinition finds a built-in audit by name.
func LookupDefinition(name string) (Definition, bool) {
	for _, definition := range Definitions() {
		if definition.Name == name {
			return definition, true
		}
	}
	return Definition{}, false
}
