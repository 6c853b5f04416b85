// Package index derives the lookup structures the audit rules evaluate.
//
// Build is a pure, single-pass function over a records.Store; the resulting
// Indices are never mutated after construction.
package index
