package rules

const (
	groupAllAccess   = "ALL_ACCESS"
	groupDataCenter  = "DATA_CENTER"
	groupSecOpsAdmin = "SECOPS_ADMIN"
	groupEngMain     = "ENG_MAIN"
)

var highRiskGroups = []string{groupAllAccess, groupDataCenter, groupSecOpsAdmin}

var reviewCombinations = [][]string{
	{groupAllAccess},
	{groupDataCenter, groupEngMain},
}

var requiredDeviceFields = []string{"device_id", "device_type", "site", "location", "status"}

var namingViolationValues = map[string]struct{}{
	"false": {},
	"0":     {},
	"no":    {},
}

// HighRiskGroups returns the access groups that require extra scrutiny.
func HighRiskGroups() []string {
	return append([]string(nil), highRiskGroups...)
}

// ReviewCombinations returns the group combinations that trigger a review when held together.
func ReviewCombinations() [][]string {
	combinations := make([][]string, 0, len(reviewCombinations))
	for _, combination := range reviewCombinations {
		combinations = append(combinations, append([]string(nil), combination...))
	}
	return combinations
}

// RequiredDeviceFields returns the inventory columns that must not be blank.
func RequiredDeviceFields() []string {
	return append([]string(nil), requiredDeviceFields...)
}
