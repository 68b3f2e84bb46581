// Package pipeline runs one deployment from raw inputs to a reported outcome.
//
// Run moves through a fixed sequence of states: inputs are validated, the base
// directory and tag are resolved, the package root is listed, the archive is
// written, the archive is uploaded and the outcome is reported. Any failure
// stops the run at the state it reached and is reported through the sink's
// Fail exactly once; a successful upload is reported through Notice. Nothing
// is written to disk before the package root has been validated and nothing
// is sent over the network before the archive exists.
package pipeline
