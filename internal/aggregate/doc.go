// Package aggregate runs a sequence of audits against one snapshot directory
// and reports the most severe outcome status.
package aggregate
