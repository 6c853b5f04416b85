package snapshot

import (
	"errors"
	"fmt"
	"strings"
)

const (
	sourceFileExtensionConstant       = ".csv"
	missingSourcesMessageTemplate     = "%s: expected %s"
	missingSourcesPathSeparator       = ", "
	sourceMissingSentinelMessage      = "required input file missing"
	unsupportedSourceTemplateConstant = "unsupported snapshot source: %s"
)

// ErrSourceMissing reports that a required input file does not exist.
var ErrSourceMissing = errors.New(sourceMissingSentinelMessage)

// Source identifies one tabular input of the audit snapshot.
type Source string

// Supported snapshot sources.
const (
	SourceUsers           Source = "users"
	SourceAccessGroups    Source = "access_groups"
	SourceDeviceInventory Source = "device_inventory"
)

// FileName returns the file name the source is read from.
func (source Source) FileName() string {
	return string(source) + sourceFileExtensionConstant
}

func (source Source) validate() error {
	switch source {
	case SourceUsers, SourceAccessGroups, SourceDeviceInventory:
		return nil
	default:
		return fmt.Errorf(unsupportedSourceTemplateConstant, source)
	}
}

// Table holds the rows of a single source keyed by column name.
type Table []map[string]string

// Tables groups loaded rows by source.
type Tables map[Source]Table

// Rows returns the rows loaded for the source, or nil when it was not requested.
func (tables Tables) Rows(source Source) Table {
	if tables == nil {
		return nil
	}
	return tables[source]
}

// MissingSourcesError lists every required file that could not be found.
type MissingSourcesError struct {
	Paths []string
}

// Error describes the missing files.
func (missingError MissingSourcesError) Error() string {
	return fmt.Sprintf(missingSourcesMessageTemplate, sourceMissingSentinelMessage, strings.Join(missingError.Paths, missingSourcesPathSeparator))
}

// Is matches ErrSourceMissing.
func (missingError MissingSourcesError) Is(target error) bool {
	return target == ErrSourceMissing
}
