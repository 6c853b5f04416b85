package audit

import (
	"time"

	"github.com/temirov/accessaudit/internal/rules"
	"github.com/temirov/accessaudit/internal/snapshot"
)

// Status is the outcome of an audit run and doubles as its process exit code.
type Status int

// Outcome statuses ordered by severity.
const (
	StatusClean            Status = 0
	StatusFindings         Status = 1
	StatusInputUnavailable Status = 2
)

// ExitCode returns the process exit code for the status.
func (status Status) ExitCode() int {
	return int(status)
}

// WorstStatus returns the most severe of the provided statuses.
func WorstStatus(statuses ...Status) Status {
	worst := StatusClean
	for _, status := range statuses {
		if status > worst {
			worst = status
		}
	}
	return worst
}

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Section routes finding categories to a titled report section.
type Section struct {
	Title      string
	Categories []rules.Category
	// Governing sections decide the outcome status; the others are informational.
	Governing bool
	// Recommendations are listed when the section holds at least one finding.
	Recommendations []string
}

// Definition describes one audit.
type Definition struct {
	Name        string
	Title       string
	Description string
	Sources     []snapshot.Source
	Rules       []rules.Rule
	Sections    []Section
	// StandingRecommendations follow the conditional ones whenever a governing section is non-empty.
	StandingRecommendations []string
	// CleanRecommendation is listed when no governing section holds findings.
	CleanRecommendation string
}

// Outcome summarizes one audit run.
type Outcome struct {
	Audit  string
	RunID  string
	Status Status
	Report *Report
}
