package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/accessaudit/internal/audit"
)

const (
	bannerTitleConstant          = "RUN ALL AUDITS"
	bannerUnderlineConstant      = "="
	runningLineTemplateConstant  = "--- Running: %s ---\n"
	completionLineConstant       = "Done.\n"
	newlineConstant              = "\n"
	auditFailureTemplateConstant = "%s: %w"
	logMessageSequenceStarted    = "run-all started"
	logMessageAuditFailed        = "audit failed"
	logMessageSequenceCompleted  = "run-all completed"
	logMessageSequenceCanceled   = "run-all canceled"
	logFieldAuditCount           = "audit_count"
	logFieldAudit                = "audit"
	logFieldStatus               = "status"
	logFieldDataDirectory        = "data_directory"
)

// AuditRunner executes a single audit definition against a data directory.
type AuditRunner interface {
	Run(executionContext context.Context, definition audit.Definition, dataDirectory string) (audit.Outcome, error)
}

// Runner executes audits in sequence and tracks the worst outcome.
type Runner struct {
	auditRunner  AuditRunner
	definitions  []audit.Definition
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewRunner constructs a Runner. The output writer must be the one the audit runner renders reports to.
func NewRunner(auditRunner AuditRunner, definitions []audit.Definition, outputWriter io.Writer, logger *zap.Logger) *Runner {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		auditRunner:  auditRunner,
		definitions:  append([]audit.Definition(nil), definitions...),
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// Run executes every definition against dataDirectory and returns the most severe status.
// An audit that fails outright counts as StatusInputUnavailable and does not stop the sequence.
func (runner *Runner) Run(executionContext context.Context, dataDirectory string) (audit.Status, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	runner.logger.Info(
		logMessageSequenceStarted,
		zap.Int(logFieldAuditCount, len(runner.definitions)),
		zap.String(logFieldDataDirectory, dataDirectory),
	)
	fmt.Fprint(runner.outputWriter, bannerTitleConstant+newlineConstant)
	fmt.Fprint(runner.outputWriter, strings.Repeat(bannerUnderlineConstant, len(bannerTitleConstant))+newlineConstant+newlineConstant)

	statuses := make([]audit.Status, 0, len(runner.definitions))
	var failures []error
	for _, definition := range runner.definitions {
		if contextError := executionContext.Err(); contextError != nil {
			runner.logger.Warn(logMessageSequenceCanceled, zap.Error(contextError))
			return audit.WorstStatus(statuses...), contextError
		}

		fmt.Fprintf(runner.outputWriter, runningLineTemplateConstant, definition.Name)
		outcome, runError := runner.auditRunner.Run(executionContext, definition, dataDirectory)
		if runError != nil {
			runner.logger.Error(logMessageAuditFailed, zap.String(logFieldAudit, definition.Name), zap.Error(runError))
			failures = append(failures, fmt.Errorf(auditFailureTemplateConstant, definition.Name, runError))
			outcome.Status = audit.StatusInputUnavailable
		}
		statuses = append(statuses, outcome.Status)
		fmt.Fprint(runner.outputWriter, newlineConstant)
	}

	fmt.Fprint(runner.outputWriter, completionLineConstant)

	worst := audit.WorstStatus(statuses...)
	runner.logger.Info(logMessageSequenceCompleted, zap.Int(logFieldStatus, worst.ExitCode()))
	return worst, errors.Join(failures...)
}
