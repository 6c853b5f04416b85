package aggregate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/accessaudit/internal/audit"
	pathutils "github.com/temirov/accessaudit/internal/utils/path"
)

const (
	commandUseConstant                    = "run-all [data_directory]"
	commandShortDescriptionConstant       = "Run the configured audits in sequence"
	commandLongDescriptionConstant        = "run-all forwards data_directory to every configured audit, prints each report in turn, and exits with the most severe status of the sequence."
	commandMaximumArgumentsConstant       = 1
	configurationErrorTemplateConstant    = "invalid run-all configuration: %w"
	commandExecutionErrorTemplateConstant = "run-all failed: %w"
)

// ConfigurationProvider returns the current run-all configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the run-all cobra command.
type CommandBuilder struct {
	LoggerProvider             audit.LoggerProvider
	ConfigurationProvider      ConfigurationProvider
	AuditConfigurationProvider audit.ConfigurationProvider
	SnapshotReader             audit.SnapshotReader
	Clock                      audit.Clock
	OutcomeRecorder            audit.OutcomeRecorder
	HomeDirectoryProvider      pathutils.HomeDirectoryProvider
}

// Build constructs the run-all command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(commandMaximumArgumentsConstant),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	definitions, definitionsError := builder.resolveConfiguration().ResolveDefinitions()
	if definitionsError != nil {
		builder.record(audit.StatusInputUnavailable)
		return fmt.Errorf(configurationErrorTemplateConstant, definitionsError)
	}

	dataDirectory := audit.ResolveDataDirectory(arguments, builder.resolveAuditConfiguration(), builder.HomeDirectoryProvider)
	logger := audit.ResolveLogger(builder.LoggerProvider)

	service := audit.NewService(builder.SnapshotReader, command.OutOrStdout(), command.ErrOrStderr(), builder.Clock, logger)
	runner := NewRunner(service, definitions, command.OutOrStdout(), logger)

	status, runError := runner.Run(command.Context(), dataDirectory)
	builder.record(status)
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveAuditConfiguration() audit.CommandConfiguration {
	if builder.AuditConfigurationProvider == nil {
		return audit.DefaultCommandConfiguration()
	}
	return builder.AuditConfigurationProvider()
}

func (builder *CommandBuilder) record(status audit.Status) {
	if builder.OutcomeRecorder == nil {
		return
	}
	builder.OutcomeRecorder(status)
}
