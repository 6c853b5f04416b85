package audit

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/accessaudit/internal/index"
	"github.com/temirov/accessaudit/internal/records"
	"github.com/temirov/accessaudit/internal/rules"
	"github.com/temirov/accessaudit/internal/snapshot"
)

const (
	inputErrorTemplateConstant      = "ERROR: %v\n"
	inputLocationTemplateConstant   = "Looked in: %s\n"
	renderErrorTemplateConstant     = "unable to render %s report: %w"
	logMessageAuditStarted          = "audit started"
	logMessageAuditCompleted        = "audit completed"
	logMessageAuditInputUnavailable = "audit input unavailable"
	logMessageSnapshotLoaded        = "snapshot loaded"
	logMessageSectionSummary        = "audit section summary"
	logMessageUnroutedFindings      = "findings without a report section"
	logFieldAudit                   = "audit"
	logFieldRunID                   = "run_id"
	logFieldDataDirectory           = "data_directory"
	logFieldStatus                  = "status"
	logFieldFindingCount            = "finding_count"
	logFieldSection                 = "section"
	logFieldGoverning               = "governing"
	logFieldUnroutedCount           = "unrouted_count"
	logFieldUserCount               = "user_count"
	logFieldAssignmentCount         = "assignment_count"
	logFieldDeviceCount             = "device_count"
)

// Service loads a snapshot, evaluates an audit definition, and renders its report.
type Service struct {
	reader       SnapshotReader
	outputWriter io.Writer
	errorWriter  io.Writer
	clock        Clock
	logger       *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(reader SnapshotReader, outputWriter io.Writer, errorWriter io.Writer, clock Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}
	return &Service{
		reader:       ResolveSnapshotReader(reader),
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
		clock:        clock,
		logger:       logger,
	}
}

// Run executes the audit against the snapshot in dataDirectory. A snapshot that
// cannot be loaded is reported on the error writer and yields
// StatusInputUnavailable with a nil error; errors are returned only when the
// report cannot be written or the context is done.
func (service *Service) Run(executionContext context.Context, definition Definition, dataDirectory string) (Outcome, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if contextError := executionContext.Err(); contextError != nil {
		return Outcome{}, contextError
	}

	dataSource := absoluteDirectory(dataDirectory)
	outcome := Outcome{Audit: definition.Name, RunID: uuid.NewString()}
	runLogger := service.logger.With(
		zap.String(logFieldAudit, definition.Name),
		zap.String(logFieldRunID, outcome.RunID),
	)
	runLogger.Info(logMessageAuditStarted, zap.String(logFieldDataDirectory, dataSource))

	tables, loadError := service.reader.Load(dataSource, definition.Sources...)
	if loadError != nil {
		fmt.Fprintf(service.errorWriter, inputErrorTemplateConstant, loadError)
		fmt.Fprintf(service.errorWriter, inputLocationTemplateConstant, dataSource)
		runLogger.Info(logMessageAuditInputUnavailable, zap.Error(loadError))
		outcome.Status = StatusInputUnavailable
		return outcome, nil
	}

	store := records.NewStore(
		records.LoadUsers(tables.Rows(snapshot.SourceUsers)),
		records.LoadAssignments(tables.Rows(snapshot.SourceAccessGroups)),
		records.LoadDevices(tables.Rows(snapshot.SourceDeviceInventory)),
	)
	runLogger.Debug(
		logMessageSnapshotLoaded,
		zap.Int(logFieldUserCount, len(store.Users)),
		zap.Int(logFieldAssignmentCount, len(store.Assignments)),
		zap.Int(logFieldDeviceCount, len(store.Devices)),
	)

	findings := rules.Evaluate(definition.Rules, store, index.Build(store))
	report := BuildReport(definition, findings, service.clock.Now(), dataSource)

	if renderError := report.Render(service.outputWriter); renderError != nil {
		return outcome, fmt.Errorf(renderErrorTemplateConstant, definition.Name, renderError)
	}

	for _, section := range report.Sections {
		runLogger.Debug(
			logMessageSectionSummary,
			zap.String(logFieldSection, section.Title),
			zap.Bool(logFieldGoverning, section.Governing),
			zap.Int(logFieldFindingCount, len(section.Findings)),
		)
	}
	if report.Unrouted > 0 {
		runLogger.Debug(logMessageUnroutedFindings, zap.Int(logFieldUnroutedCount, report.Unrouted))
	}

	outcome.Status = report.Status()
	outcome.Report = &report
	runLogger.Info(
		logMessageAuditCompleted,
		zap.Int(logFieldStatus, outcome.Status.ExitCode()),
		zap.Int(logFieldFindingCount, report.FindingCount()),
	)

	return outcome, nil
}

func absoluteDirectory(dataDirectory string) string {
	absolutePath, absoluteError := filepath.Abs(dataDirectory)
	if absoluteError != nil {
		return dataDirectory
	}
	return absolutePath
}
