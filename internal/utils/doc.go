// Package utils exposes reusable helpers consumed by multiple commands.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// environment variables through Viper; LoggerFactory builds zap loggers that
// write diagnostics to a caller-selected stream.
package utils
