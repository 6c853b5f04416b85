// Package cli constructs the access-audit command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. Execute returns the most severe audit status so the caller can
// use it as the process exit code.
package cli
