// Package records turns raw snapshot rows into typed, immutable record
// collections.
//
// Loading is tolerant: every field is trimmed, status fields are upper-cased,
// missing columns resolve to empty strings, and users without a user_id are
// dropped. No validation happens here; rules decide what is wrong.
package records
