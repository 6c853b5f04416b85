// Package audit runs one audit over a snapshot and renders its report.
//
// A Definition names the snapshot sources an audit needs, the rules it
// evaluates, the report sections findings are routed to, and which sections
// govern the outcome status. Service drives load, index, evaluate, render and
// status computation; CommandBuilder wires a Definition into a Cobra command.
package audit
