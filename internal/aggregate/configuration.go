package aggregate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/accessaudit/internal/audit"
)

const (
	auditsConfigurationKeySuffix     = ".audits"
	unknownAuditMessageConstant      = "unknown audit in run-all sequence"
	unknownAuditErrorTemplate        = "%w: %q (available: %s)"
	availableAuditsSeparatorConstant = ", "
)

// ErrUnknownAudit indicates a configured audit name that matches no catalog definition.
var ErrUnknownAudit = errors.New(unknownAuditMessageConstant)

// CommandConfiguration captures persistent settings for the run-all command.
type CommandConfiguration struct {
	Audits []string `mapstructure:"audits" yaml:"audits"`
}

// DefaultAuditSequence lists the audits run-all executes when none are configured.
func DefaultAuditSequence() []string {
	return []string{
		audit.UserRecordsAuditName,
		audit.OrphanBadgesAuditName,
		audit.LeastPrivilegeAuditName,
		audit.DeviceInventoryAuditName,
	}
}

// DefaultCommandConfiguration returns baseline configuration values for run-all.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Audits: DefaultAuditSequence()}
}

// DefaultConfigurationValues returns the Viper defaults rooted at configurationKey.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	return map[string]any{
		configurationKey + auditsConfigurationKeySuffix: DefaultAuditSequence(),
	}
}

// ResolveDefinitions maps the configured audit names onto catalog definitions.
// Blank entries are skipped and an empty sequence falls back to the default.
func (configuration CommandConfiguration) ResolveDefinitions() ([]audit.Definition, error) {
	names := make([]string, 0, len(configuration.Audits))
	for _, name := range configuration.Audits {
		trimmed := strings.TrimSpace(name)
		if len(trimmed) == 0 {
			continue
		}
		names = append(names, trimmed)
	}
	if len(names) == 0 {
		names = DefaultAuditSequence()
	}

	definitions := make([]audit.Definition, 0, len(names))
	for _, name := range names {
		definition, found := audit.LookupDefinition(name)
		if !found {
			return nil, fmt.Errorf(unknownAuditErrorTemplate, ErrUnknownAudit, name, strings.Join(availableAuditNames(), availableAuditsSeparatorConstant))
		}
		definitions = append(definitions, definition)
	}
	return definitions, nil
}

func availableAuditNames() []string {
	definitions := audit.Definitions()
	names := make([]string, 0, len(definitions))
	for _, definition := range definitions {
		names = append(names, definition.Name)
	}
	return names
}
