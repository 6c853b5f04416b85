package audit

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pathutils "github.com/temirov/accessaudit/internal/utils/path"
)

const (
	commandUseTemplateConstant             = "%s [data_directory]"
	commandLongDescriptionTemplateConstant = "%s reads the CSV snapshot in data_directory, prints the %s report, and exits 0 when clean, 1 when findings govern the result, or 2 when input is unavailable."
	commandMaximumArgumentsConstant        = 1
	missingDefinitionErrorConstant         = "audit command requires a definition"
	commandExecutionErrorTemplateConstant  = "%s audit failed: %w"
)

// ConfigurationProvider returns the current audit configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the cobra command that runs a single audit definition.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Definition            Definition
	SnapshotReader        SnapshotReader
	Clock                 Clock
	OutcomeRecorder       OutcomeRecorder
	HomeDirectoryProvider pathutils.HomeDirectoryProvider
}

// Build constructs the cobra command for the configured audit definition.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	if len(builder.Definition.Name) == 0 {
		return nil, errors.New(missingDefinitionErrorConstant)
	}

	command := &cobra.Command{
		Use:   fmt.Sprintf(commandUseTemplateConstant, builder.Definition.Name),
		Short: builder.Definition.Description,
		Long:  fmt.Sprintf(commandLongDescriptionTemplateConstant, builder.Definition.Name, builder.Definition.Title),
		Args:  cobra.MaximumNArgs(commandMaximumArgumentsConstant),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	dataDirectory := builder.resolveDataDirectory(arguments)

	service := NewService(
		builder.SnapshotReader,
		command.OutOrStdout(),
		command.ErrOrStderr(),
		builder.Clock,
		ResolveLogger(builder.LoggerProvider),
	)

	outcome, runError := service.Run(command.Context(), builder.Definition, dataDirectory)
	if runError != nil {
		builder.record(StatusInputUnavailable)
		return fmt.Errorf(commandExecutionErrorTemplateConstant, builder.Definition.Name, runError)
	}

	builder.record(outcome.Status)
	return nil
}

func (builder *CommandBuilder) resolveDataDirectory(arguments []string) string {
	return ResolveDataDirectory(arguments, builder.resolveConfiguration(), builder.HomeDirectoryProvider)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration
}

func (builder *CommandBuilder) record(status Status) {
	if builder.OutcomeRecorder == nil {
		return
	}
	builder.OutcomeRecorder(status)
}
