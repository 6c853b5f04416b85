// Package rules holds the fixed battery of integrity and least-privilege checks.
//
// Every rule is a pure function of a records.Store and its index.Indices and
// returns findings in a deterministic order: badges, users, devices and IP
// addresses are visited in ascending order of their identifiers. Policy data
// (high-risk groups, review combinations, required device fields) is static and
// only handed out as copies.
package rules
