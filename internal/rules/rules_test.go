package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/accessaudit/internal/index"
	"github.com/temirov/accessaudit/internal/records"
	"github.com/temirov/accessaudit/internal/rules"
)

func evaluateRule(rule rules.Rule, store records.Store) []rules.Finding {
	return rule.Evaluate(store, index.Build(store))
}

func messagesFor(findings []rules.Finding, category rules.Category) []string {
	var messages []string
	for _, finding := range findings {
		if finding.Category == category {
			messages = append(messages, finding.Message)
		}
	}
	return messages
}

func TestLeastPrivilegeRule(testInstance *testing.T) {
	testCases := []struct {
		name             string
		store            records.Store
		expectedHighRisk []string
		expectedCombos   []string
	}{
		{
			name:  "no_assignments",
			store: records.NewStore([]records.User{{UserID: "U1", Status: records.StatusActive}}, nil, nil),
		},
		{
			name: "orphan_all_access_badge",
			store: records.NewStore(nil, []records.AccessAssignment{
				{BadgeID: "B9", AccessGroup: "ALL_ACCESS"},
			}, nil),
			expectedHighRisk: []string{"UNKNOWN OWNER badge=B9 has HIGH-RISK groups: [ALL_ACCESS]"},
			expectedCombos:   []string{"UNKNOWN OWNER badge=B9 has REVIEW combo=[ALL_ACCESS] (current=[ALL_ACCESS])"},
		},
		{
			name: "owned_badges_in_badge_order",
			store: records.NewStore(
				[]records.User{
					{UserID: "U1", FullName: "Ada", BadgeID: "B2", Status: records.StatusActive},
					{UserID: "U2", FullName: "Grace", BadgeID: "B1", Status: records.StatusInactive},
				},
				[]records.AccessAssignment{
					{BadgeID: "B2", AccessGroup: "ENG_MAIN"},
					{BadgeID: "B2", AccessGroup: "DATA_CENTER"},
					{BadgeID: "B1", AccessGroup: "SECOPS_ADMIN"},
					{BadgeID: "B3", AccessGroup: "LOBBY"},
				},
				nil,
			),
			expectedHighRisk: []string{
				"Grace (U2, status=INACTIVE) badge=B1 has HIGH-RISK groups: [SECOPS_ADMIN]",
				"Ada (U1, status=ACTIVE) badge=B2 has HIGH-RISK groups: [DATA_CENTER]",
			},
			expectedCombos: []string{
				"Ada (U1, status=ACTIVE) badge=B2 has REVIEW combo=[DATA_CENTER, ENG_MAIN] (current=[DATA_CENTER, ENG_MAIN])",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			findings := evaluateRule(rules.LeastPrivilegeRule{}, testCase.store)
			require.Equal(subtest, testCase.expectedHighRisk, messagesFor(findings, rules.CategoryHighRiskGroups))
			require.Equal(subtest, testCase.expectedCombos, messagesFor(findings, rules.CategoryReviewCombination))
		})
	}
}

func TestLeastPrivilegeRuleIsOrderIndependent(testInstance *testing.T) {
	forward := records.NewStore(nil, []records.AccessAssignment{
		{BadgeID: "B1", AccessGroup: "SECOPS_ADMIN"},
		{BadgeID: "B1", AccessGroup: "ENG_MAIN"},
	}, nil)
	reversed := records.NewStore(nil, []records.AccessAssignment{
		{BadgeID: "B1", AccessGroup: "ENG_MAIN"},
		{BadgeID: "B1", AccessGroup: "SECOPS_ADMIN"},
	}, nil)

	require.Equal(testInstance, evaluateRule(rules.LeastPrivilegeRule{}, forward), evaluateRule(rules.LeastPrivilegeRule{}, reversed))
}

func TestOrphanBadgeRuleSeparatesOrphanAndNonActive(testInstance *testing.T) {
	store := records.NewStore(
		[]records.User{
			{UserID: "U1", BadgeID: "B1", Status: records.StatusActive},
			{UserID: "U2", BadgeID: "B2", Status: records.StatusInactive},
			{UserID: "U3", BadgeID: "B3", Status: "ON_LEAVE"},
		},
		[]records.AccessAssignment{
			{BadgeID: "B9", AccessGroup: "ENG_MAIN"},
			{BadgeID: "B9", AccessGroup: "ALL_ACCESS"},
			{BadgeID: "B9", AccessGroup: "ENG_MAIN"},
			{BadgeID: "B1", AccessGroup: "ENG_MAIN"},
			{BadgeID: "B2", AccessGroup: "LOBBY"},
			{BadgeID: "B3", AccessGroup: "LOBBY"},
			{BadgeID: "B8", AccessGroup: "LOBBY"},
		},
		nil,
	)

	findings := evaluateRule(rules.OrphanBadgeRule{}, store)

	require.Equal(testInstance, []string{
		"badge=B8 has groups=[LOBBY] but no matching user record",
		"badge=B9 has groups=[ALL_ACCESS, ENG_MAIN] but no matching user record",
	}, messagesFor(findings, rules.CategoryOrphanBadge))
	require.Equal(testInstance, []string{
		"badge=B2 has groups=[LOBBY] but is not tied to an ACTIVE user (review)",
		"badge=B3 has groups=[LOBBY] but is not tied to an ACTIVE user (review)",
	}, messagesFor(findings, rules.CategoryNonActiveBadge))

	subjectCounts := map[string]int{}
	for _, finding := range findings {
		subjectCounts[finding.Subject]++
	}
	require.Equal(testInstance, 1, subjectCounts["B9"])
}

func TestUserRecordIntegrityRule(testInstance *testing.T) {
	store := records.NewStore(
		[]records.User{
			{UserID: "U3", FullName: "Linus", Department: "ENG", Location: "HQ", Status: records.StatusActive},
			{UserID: "U1", FullName: "Ada", Department: "ENG", Location: "HQ", Status: records.StatusActive},
			{UserID: "U2", FullName: "Grace", Status: records.StatusInactive},
			{UserID: "U4", FullName: "Ken", BadgeID: "B1", Status: records.StatusActive},
			{UserID: "U5", FullName: "Dennis", BadgeID: "B1", Status: records.StatusInactive},
			{UserID: "U6", FullName: "Barbara", BadgeID: "B2", Status: records.StatusActive},
		},
		nil,
		nil,
	)

	findings := evaluateRule(rules.UserRecordIntegrityRule{}, store)

	require.Equal(testInstance, []string{
		"Ada (U1) is ACTIVE but has no badge_id on file",
		"Linus (U3) is ACTIVE but has no badge_id on file",
	}, messagesFor(findings, rules.CategoryActiveUserMissingBadge))
	require.Equal(testInstance, []string{
		"badge_id=B1 assigned to multiple users: Ken (U4), Dennis (U5)",
	}, messagesFor(findings, rules.CategoryDuplicateBadge))
}

func TestDeviceInventoryRule(testInstance *testing.T) {
	store := records.NewStore(nil, nil, []records.Device{
		{DeviceID: "D2", DeviceType: "reader", Site: "HQ", Location: "Lobby", Status: records.StatusActive, IPAddress: "10.0.0.5", NamingConventionOK: "No"},
		{DeviceID: "", DeviceType: "camera", Site: "HQ", Location: "", Status: "RETIRED"},
		{DeviceID: "D1", DeviceType: "reader", Site: "HQ", Location: "Dock", Status: records.StatusActive, NamingConventionOK: "true"},
		{DeviceID: "D3", DeviceType: "panel", Site: "DC", Location: "Cage", Status: records.StatusActive, IPAddress: "10.0.0.5", NamingConventionOK: "0"},
	})

	findings := evaluateRule(rules.DeviceInventoryRule{}, store)

	require.Equal(testInstance, []string{
		"device_id=UNKNOWN missing field=device_id",
		"device_id=UNKNOWN missing field=location",
	}, messagesFor(findings, rules.CategoryDeviceMissingField))
	require.Equal(testInstance, []string{
		"D1 is ACTIVE but ip_address is blank",
	}, messagesFor(findings, rules.CategoryActiveDeviceMissingIP))
	require.Equal(testInstance, []string{
		"ip_address=10.0.0.5 used by devices=[D2, D3] (possible record error/conflict)",
	}, messagesFor(findings, rules.CategoryDuplicateIP))
	require.Equal(testInstance, []string{
		"D2 naming_convention_ok=false (review naming/labeling standard)",
		"D3 naming_convention_ok=false (review naming/labeling standard)",
	}, messagesFor(findings, rules.CategoryNamingConvention))
}

func TestInactiveAccessAndVisibilityRules(testInstance *testing.T) {
	store := records.NewStore(
		[]records.User{
			{UserID: "U1", FullName: "Ada", BadgeID: "B1", Status: records.StatusInactive, LastDay: "2024-03-01"},
			{UserID: "U2", FullName: "Grace", BadgeID: "B2", Status: records.StatusInactive},
			{UserID: "U3", FullName: "Linus", BadgeID: "B3", Status: "TERMINATED"},
			{UserID: "U4", FullName: "Ken", BadgeID: "B4", Status: records.StatusInactive},
		},
		[]records.AccessAssignment{
			{BadgeID: "B2", AccessGroup: "DATA_CENTER"},
			{BadgeID: "B1", AccessGroup: "ENG_MAIN"},
			{BadgeID: "B3", AccessGroup: "ENG_MAIN"},
			{BadgeID: "B7", AccessGroup: "SECOPS_ADMIN"},
		},
		nil,
	)

	inactive := evaluateRule(rules.InactiveAccessRule{}, store)
	require.Equal(testInstance, []string{
		"Ada (U1) badge=B1 has groups=[ENG_MAIN] (last_day=2024-03-01)",
		"Grace (U2) badge=B2 has groups=[DATA_CENTER] (last_day=unknown)",
	}, messagesFor(inactive, rules.CategoryInactiveUserWithAccess))

	visibility := evaluateRule(rules.HighRiskVisibilityRule{}, store)
	require.Equal(testInstance, []string{
		"Grace (U2) badge=B2 high_risk_groups=[DATA_CENTER]",
		"UNKNOWN OWNER badge=B7 high_risk_groups=[SECOPS_ADMIN]",
	}, messagesFor(visibility, rules.CategoryHighRiskVisibility))
}

func TestPolicyAccessorsReturnCopies(testInstance *testing.T) {
	highRisk := rules.HighRiskGroups()
	highRisk[0] = "MUTATED"
	require.Equal(testInstance, []string{"ALL_ACCESS", "DATA_CENTER", "SECOPS_ADMIN"}, rules.HighRiskGroups())

	combinations := rules.ReviewCombinations()
	combinations[1][0] = "MUTATED"
	require.Equal(testInstance, [][]string{{"ALL_ACCESS"}, {"DATA_CENTER", "ENG_MAIN"}}, rules.ReviewCombinations())

	require.Equal(testInstance, []string{"device_id", "device_type", "site", "location", "status"}, rules.RequiredDeviceFields())
}

func TestEvaluateConcatenatesInRuleOrder(testInstance *testing.T) {
	store := records.NewStore(
		[]records.User{{UserID: "U1", FullName: "Ada", Status: records.StatusActive}},
		[]records.AccessAssignment{{BadgeID: "B9", AccessGroup: "LOBBY"}},
		nil,
	)

	findings := rules.Evaluate([]rules.Rule{rules.UserRecordIntegrityRule{}, nil, rules.OrphanBadgeRule{}}, store, index.Build(store))
	require.Len(testInstance, findings, 2)
	require.Equal(testInstance, rules.CategoryActiveUserMissingBadge, findings[0].Category)
	require.Equal(testInstance, rules.CategoryOrphanBadge, findings[1].Category)
}
