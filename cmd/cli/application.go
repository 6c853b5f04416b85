package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/accessaudit/internal/aggregate"
	"github.com/temirov/accessaudit/internal/audit"
	"github.com/temirov/accessaudit/internal/utils"
	flagutils "github.com/temirov/accessaudit/internal/utils/flags"
)

const (
	applicationNameConstant                 = "access-audit"
	applicationShortDescriptionConstant     = "Compliance audits over user, badge and device snapshots"
	applicationLongDescriptionConstant      = "access-audit cross-references CSV snapshots of the user directory, badge access-group assignments, and device inventory against integrity and least-privilege rules, printing findings and exiting 0 when clean, 1 when findings govern the result, or 2 when input is unavailable."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	initFlagNameConstant                    = "init"
	initFlagUsageConstant                   = "Write the effective configuration to ./config.yaml and exit."
	forceFlagNameConstant                   = "force"
	forceFlagUsageConstant                  = "Overwrite an existing ./config.yaml when used with --init."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	toolsConfigurationKeyConstant           = "tools"
	auditsConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".audits"
	runAllConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".run_all"
	environmentPrefixConstant               = "ACCESSAUDIT"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationFileNameConstant           = configurationNameConstant + "." + configurationTypeConstant
	userConfigurationDirectoryNameConstant  = ".access-audit"
	configurationFilePermissionsConstant    = 0o600
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	configurationExistsErrorTemplate        = "configuration file %s already exists; rerun with --force to overwrite"
	configurationWriteErrorTemplateConstant = "unable to write configuration: %w"
	configurationWrittenTemplateConstant    = "Configuration written to %s\n"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "access-audit CLI executed"
	rootCommandDebugMessageConstant         = "access-audit CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common" yaml:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools" yaml:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for the audit commands and the aggregate runner.
type ApplicationToolsConfiguration struct {
	Audits audit.CommandConfiguration     `mapstructure:"audits" yaml:"audits"`
	RunAll aggregate.CommandConfiguration `mapstructure:"run_all" yaml:"run_all"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	initializeFlagValue   bool
	forceFlagValue        bool
	worstStatus           audit.Status
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		utils.DefaultSearchPaths(userConfigurationDirectoryNameConstant, nil),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().Var(
		flagutils.NewChoiceValue(&application.logLevelFlagValue, utils.SupportedLogLevels()),
		logLevelFlagNameConstant,
		flagutils.FormatChoiceUsage(string(utils.LogLevelWarn), utils.SupportedLogLevels(), logLevelFlagUsageConstant),
	)
	cobraCommand.PersistentFlags().Var(
		flagutils.NewChoiceValue(&application.logFormatFlagValue, utils.SupportedLogFormats()),
		logFormatFlagNameConstant,
		flagutils.FormatChoiceUsage(string(utils.LogFormatStructured), utils.SupportedLogFormats(), logFormatFlagUsageConstant),
	)
	cobraCommand.Flags().BoolVar(&application.initializeFlagValue, initFlagNameConstant, false, initFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.forceFlagValue, forceFlagNameConstant, false, forceFlagUsageConstant)

	for _, definition := range audit.Definitions() {
		auditBuilder := audit.CommandBuilder{
			LoggerProvider: func() *zap.Logger {
				return application.logger
			},
			ConfigurationProvider: func() audit.CommandConfiguration {
				return application.configuration.Tools.Audits
			},
			Definition:      definition,
			OutcomeRecorder: application.recordStatus,
		}
		auditCommand, auditBuildError := auditBuilder.Build()
		if auditBuildError == nil {
			cobraCommand.AddCommand(auditCommand)
		}
	}

	runAllBuilder := aggregate.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() aggregate.CommandConfiguration {
			return application.configuration.Tools.RunAll
		},
		AuditConfigurationProvider: func() audit.CommandConfiguration {
			return application.configuration.Tools.Audits
		},
		OutcomeRecorder: application.recordStatus,
	}
	runAllCommand, runAllBuildError := runAllBuilder.Build()
	if runAllBuildError == nil {
		cobraCommand.AddCommand(runAllCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy, flushes the logger, and
// returns the exit code. Any command error raises the exit code to at least 2.
func (application *Application) Execute() (int, error) {
	executionError := application.rootCommand.Execute()

	status := application.worstStatus
	if executionError != nil {
		status = audit.WorstStatus(status, audit.StatusInputUnavailable)
	}

	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return status.ExitCode(), fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return status.ExitCode(), executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() (int, error) {
	return NewApplication().Execute()
}

func (application *Application) recordStatus(status audit.Status) {
	application.worstStatus = audit.WorstStatus(application.worstStatus, status)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range audit.DefaultConfigurationValues(auditsConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range aggregate.DefaultConfigurationValues(runAllConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
		command.ErrOrStderr(),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if application.initializeFlagValue {
		return application.writeConfigurationFile(command)
	}

	return command.Help()
}

func (application *Application) writeConfigurationFile(command *cobra.Command) error {
	if _, statError := os.Stat(configurationFileNameConstant); statError == nil {
		if !application.forceFlagValue {
			return fmt.Errorf(configurationExistsErrorTemplate, configurationFileNameConstant)
		}
	} else if !errors.Is(statError, fs.ErrNotExist) {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, statError)
	}

	renderedConfiguration, marshalError := yaml.Marshal(application.configuration)
	if marshalError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, marshalError)
	}

	if writeError := os.WriteFile(configurationFileNameConstant, renderedConfiguration, configurationFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, writeError)
	}

	fmt.Fprintf(command.OutOrStdout(), configurationWrittenTemplateConstant, configurationFileNameConstant)
	return nil
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
