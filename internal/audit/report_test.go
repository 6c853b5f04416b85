package audit_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/accessaudit/internal/audit"
	"github.com/temirov/accessaudit/internal/rules"
)

const (
	testReportTitleConstant          = "TEST AUDIT"
	testGoverningSectionConstant     = "Findings: Governing"
	testInformationalSectionConstant = "Findings: Informational"
	testGoverningAdviceConstant      = "Fix the governing findings."
	testInformationalAdviceConstant  = "Review the informational findings."
	testStandingAdviceConstant       = "Retain audit trail."
	testCleanAdviceConstant          = "Nothing to do."
	testDataSourceConstant           = "/srv/audit/data"
	testRecommendationsTitleConstant = "Recommended next actions (Tier-1 / Ops)"
)

var testRunTime = time.Date(2025, time.March, 4, 5, 6, 7, 0, time.UTC)

func testDefinition() audit.Definition {
	return audit.Definition{
		Name:  "test-audit",
		Title: testReportTitleConstant,
		Sections: []audit.Section{
			{
				Title:           testGoverningSectionConstant,
				Categories:      []rules.Category{rules.CategoryOrphanBadge},
				Governing:       true,
				Recommendations: []string{testGoverningAdviceConstant, testStandingAdviceConstant},
			},
			{
				Title:           testInformationalSectionConstant,
				Categories:      []rules.Category{rules.CategoryNonActiveBadge},
				Recommendations: []string{testInformationalAdviceConstant},
			},
		},
		StandingRecommendations: []string{testStandingAdviceConstant},
		CleanRecommendation:     testCleanAdviceConstant,
	}
}

func heading(title string, underline string) string {
	return title + "\n" + strings.Repeat(underline, len(title)) + "\n"
}

func TestBuildReportRoutesFindingsAndSelectsRecommendations(testInstance *testing.T) {
	testCases := []struct {
		name                    string
		findings                []rules.Finding
		expectedGoverning       []string
		expectedInformational   []string
		expectedRecommendations []string
		expectedStatus          audit.Status
		expectedUnrouted        int
	}{
		{
			name:                    "clean",
			expectedRecommendations: []string{testCleanAdviceConstant},
			expectedStatus:          audit.StatusClean,
		},
		{
			name: "governing_findings",
			findings: []rules.Finding{
				{Category: rules.CategoryOrphanBadge, Subject: "B1", Message: "orphan B1"},
				{Category: rules.CategoryOrphanBadge, Subject: "B2", Message: "orphan B2"},
			},
			expectedGoverning:       []string{"orphan B1", "orphan B2"},
			expectedRecommendations: []string{testGoverningAdviceConstant, testStandingAdviceConstant},
			expectedStatus:          audit.StatusFindings,
		},
		{
			name: "informational_findings_only",
			findings: []rules.Finding{
				{Category: rules.CategoryNonActiveBadge, Subject: "B3", Message: "non-active B3"},
			},
			expectedInformational:   []string{"non-active B3"},
			expectedRecommendations: []string{testInformationalAdviceConstant, testCleanAdviceConstant},
			expectedStatus:          audit.StatusClean,
		},
		{
			name: "unrouted_findings_are_counted",
			findings: []rules.Finding{
				{Category: rules.CategoryDuplicateIP, Subject: "10.0.0.1", Message: "duplicate"},
			},
			expectedRecommendations: []string{testCleanAdviceConstant},
			expectedStatus:          audit.StatusClean,
			expectedUnrouted:        1,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			report := audit.BuildReport(testDefinition(), testCase.findings, testRunTime, testDataSourceConstant)
			require.Len(subtest, report.Sections, 2)
			require.Equal(subtest, testCase.expectedGoverning, report.Sections[0].Findings)
			require.Equal(subtest, testCase.expectedInformational, report.Sections[1].Findings)
			require.Equal(subtest, testCase.expectedRecommendations, report.Recommendations)
			require.Equal(subtest, testCase.expectedStatus, report.Status())
			require.Equal(subtest, testCase.expectedUnrouted, report.Unrouted)
		})
	}
}

func TestReportRender(testInstance *testing.T) {
	findings := []rules.Finding{
		{Category: rules.CategoryOrphanBadge, Subject: "B1", Message: "orphan B1"},
	}
	report := audit.BuildReport(testDefinition(), findings, testRunTime, testDataSourceConstant)

	outputBuffer := &bytes.Buffer{}
	require.NoError(testInstance, report.Render(outputBuffer))

	expected := heading(testReportTitleConstant, "=") +
		"Run time: 2025-03-04 05:06:07\n" +
		"Data source: " + testDataSourceConstant + "\n" +
		"\n" +
		heading(testGoverningSectionConstant, "-") +
		"1. orphan B1\n" +
		"\n" +
		heading(testInformationalSectionConstant, "-") +
		"None found.\n" +
		"\n" +
		heading(testRecommendationsTitleConstant, "-") +
		"1. " + testGoverningAdviceConstant + "\n" +
		"2. " + testStandingAdviceConstant + "\n"
	require.Equal(testInstance, expected, outputBuffer.String())
}

func TestReportRenderIsStableAcrossRuns(testInstance *testing.T) {
	findings := []rules.Finding{
		{Category: rules.CategoryNonActiveBadge, Subject: "B3", Message: "non-active B3"},
	}
	firstReport := audit.BuildReport(testDefinition(), findings, testRunTime, testDataSourceConstant)
	secondReport := audit.BuildReport(testDefinition(), findings, testRunTime.Add(time.Hour), testDataSourceConstant)

	firstBuffer := &bytes.Buffer{}
	secondBuffer := &bytes.Buffer{}
	require.NoError(testInstance, firstReport.RenderSections(firstBuffer))
	require.NoError(testInstance, secondReport.RenderSections(secondBuffer))
	require.Equal(testInstance, firstBuffer.String(), secondBuffer.String())
}

func TestWorstStatus(testInstance *testing.T) {
	testCases := []struct {
		name     string
		statuses []audit.Status
		expected audit.Status
	}{
		{name: "empty", expected: audit.StatusClean},
		{name: "findings", statuses: []audit.Status{audit.StatusClean, audit.StatusClean, audit.StatusFindings, audit.StatusClean}, expected: audit.StatusFindings},
		{name: "input_unavailable", statuses: []audit.Status{audit.StatusClean, audit.StatusInputUnavailable, audit.StatusClean, audit.StatusFindings}, expected: audit.StatusInputUnavailable},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			require.Equal(subtest, testCase.expected, audit.WorstStatus(testCase.statuses...))
			require.Equal(subtest, int(testCase.expected), testCase.expected.ExitCode())
		})
	}
}
