package audit

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/temirov/accessaudit/internal/rules"
)

const (
	runTimeLayoutConstant             = "2006-01-02 15:04:05"
	runTimeLineTemplateConstant       = "Run time: %s\n"
	dataSourceLineTemplateConstant    = "Data source: %s\n"
	numberedItemTemplateConstant      = "%d. %s\n"
	emptySectionMarkerConstant        = "None found."
	titleUnderlineCharacterConstant   = "="
	sectionUnderlineCharacterConstant = "-"
	recommendationsTitleConstant      = "Recommended next actions (Tier-1 / Ops)"
	newlineConstant                   = "\n"
)

// SectionReport holds the rendered findings of one section.
type SectionReport struct {
	Title     string
	Governing bool
	Findings  []string
}

// Report is the rendered result of one audit run.
type Report struct {
	Title           string
	RunTime         time.Time
	DataSource      string
	Sections        []SectionReport
	Recommendations []string
	// Unrouted counts findings whose category no section claims.
	Unrouted int
}

// BuildReport routes findings into the definition's sections and selects recommendations.
func BuildReport(definition Definition, findings []rules.Finding, runTime time.Time, dataSource string) Report {
	sectionByCategory := make(map[rules.Category]int)
	sections := make([]SectionReport, len(definition.Sections))
	for sectionIndex, section := range definition.Sections {
		sections[sectionIndex] = SectionReport{Title: section.Title, Governing: section.Governing}
		for _, category := range section.Categories {
			if _, claimed := sectionByCategory[category]; claimed {
				continue
			}
			sectionByCategory[category] = sectionIndex
		}
	}

	unrouted := 0
	for _, finding := range findings {
		sectionIndex, routed := sectionByCategory[finding.Category]
		if !routed {
			unrouted++
			continue
		}
		sections[sectionIndex].Findings = append(sections[sectionIndex].Findings, finding.Message)
	}

	report := Report{
		Title:      definition.Title,
		RunTime:    runTime,
		DataSource: dataSource,
		Sections:   sections,
		Unrouted:   unrouted,
	}
	report.Recommendations = selectRecommendations(definition, report)
	return report
}

func selectRecommendations(definition Definition, report Report) []string {
	var recommendations []string
	seen := make(map[string]struct{})
	appendUnique := func(recommendation string) {
		if len(recommendation) == 0 {
			return
		}
		if _, duplicate := seen[recommendation]; duplicate {
			return
		}
		seen[recommendation] = struct{}{}
		recommendations = append(recommendations, recommendation)
	}

	for sectionIndex, section := range definition.Sections {
		if len(report.Sections[sectionIndex].Findings) == 0 {
			continue
		}
		for _, recommendation := range section.Recommendations {
			appendUnique(recommendation)
		}
	}

	if report.HasGoverningFindings() {
		for _, recommendation := range definition.StandingRecommendations {
			appendUnique(recommendation)
		}
	} else {
		appendUnique(definition.CleanRecommendation)
	}

	return recommendations
}

// HasGoverningFindings reports whether any governing section holds a finding.
func (report Report) HasGoverningFindings() bool {
	for _, section := range report.Sections {
		if section.Governing && len(section.Findings) > 0 {
			return true
		}
	}
	return false
}

// Status derives the outcome status from the governing sections.
func (report Report) Status() Status {
	if report.HasGoverningFindings() {
		return StatusFindings
	}
	return StatusClean
}

// FindingCount returns the number of routed findings across all sections.
func (report Report) FindingCount() int {
	total := 0
	for _, section := range report.Sections {
		total += len(section.Findings)
	}
	return total
}

// Render writes the header, every section, and the recommendations block.
func (report Report) Render(writer io.Writer) error {
	builder := &strings.Builder{}

	writeHeading(builder, report.Title, titleUnderlineCharacterConstant)
	fmt.Fprintf(builder, runTimeLineTemplateConstant, report.RunTime.Format(runTimeLayoutConstant))
	fmt.Fprintf(builder, dataSourceLineTemplateConstant, report.DataSource)
	builder.WriteString(newlineConstant)

	report.renderSections(builder)

	writeHeading(builder, recommendationsTitleConstant, sectionUnderlineCharacterConstant)
	writeNumberedList(builder, report.Recommendations)

	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

// RenderSections writes only the finding sections.
func (report Report) RenderSections(writer io.Writer) error {
	builder := &strings.Builder{}
	report.renderSections(builder)
	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

func (report Report) renderSections(builder *strings.Builder) {
	for _, section := range report.Sections {
		writeHeading(builder, section.Title, sectionUnderlineCharacterConstant)
		if len(section.Findings) == 0 {
			builder.WriteString(emptySectionMarkerConstant + newlineConstant)
		} else {
			writeNumberedList(builder, section.Findings)
		}
		builder.WriteString(newlineConstant)
	}
}

func writeHeading(builder *strings.Builder, title string, underlineCharacter string) {
	builder.WriteString(title + newlineConstant)
	builder.WriteString(strings.Repeat(underlineCharacter, len(title)) + newlineConstant)
}

func writeNumberedList(builder *strings.Builder, items []string) {
	for itemIndex, item := range items {
		fmt.Fprintf(builder, numberedItemTemplateConstant, itemIndex+1, item)
	}
}
