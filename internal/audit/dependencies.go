package audit

import (
	"go.uber.org/zap"

	"github.com/temirov/accessaudit/internal/snapshot"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// SnapshotReader loads the requested sources from a data directory.
type SnapshotReader interface {
	Load(dataDirectory string, sources ...snapshot.Source) (snapshot.Tables, error)
}

// OutcomeRecorder receives the status of every completed audit command.
type OutcomeRecorder func(status Status)

// ResolveSnapshotReader returns the provided reader or the file-backed default.
func ResolveSnapshotReader(reader SnapshotReader) SnapshotReader {
	if reader != nil {
		return reader
	}
	return snapshot.NewReader(nil)
}

// ResolveLogger returns the provider's logger or a no-op logger.
func ResolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
