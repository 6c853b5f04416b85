package audit

import (
	"strings"

	pathutils "github.com/temirov/accessaudit/internal/utils/path"
)

const (
	defaultDataDirectoryConstant        = "data"
	dataDirectoryConfigurationKeySuffix = ".data_directory"
)

// CommandConfiguration captures persistent settings shared by the audit commands.
type CommandConfiguration struct {
	DataDirectory string `mapstructure:"data_directory" yaml:"data_directory"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DataDirectory: defaultDataDirectoryConstant,
	}
}

// DefaultConfigurationValues returns the Viper defaults rooted at configurationKey.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKey + dataDirectoryConfigurationKeySuffix: defaults.DataDirectory,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.DataDirectory = strings.TrimSpace(configuration.DataDirectory)
	if len(sanitized.DataDirectory) == 0 {
		sanitized.DataDirectory = defaultDataDirectoryConstant
	}
	return sanitized
}

// ResolveDataDirectory picks the positional argument, then the configured
// directory, then the default, expanding a leading tilde.
func ResolveDataDirectory(arguments []string, configuration CommandConfiguration, provider pathutils.HomeDirectoryProvider) string {
	var argumentDirectory string
	if len(arguments) > 0 {
		argumentDirectory = arguments[0]
	}
	sanitized := configuration.sanitize()
	resolver := pathutils.NewDirectoryResolver(provider)
	return resolver.Resolve(argumentDirectory, sanitized.DataDirectory)
}
