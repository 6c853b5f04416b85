// Package snapshot reads the tabular inputs of an audit run from a data
// directory.
//
// Each source is a CSV file with a header row; rows are returned as
// column-name to value mappings so that field order never matters. Byte order
// marks (UTF-8 and UTF-16) are honoured before parsing.
package snapshot
