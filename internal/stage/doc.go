// Package stage defines the shared vocabulary of a deployment run.
//
// Key responsibilities:
//   - Context helpers that stamp the run ID and the current pipeline stage so
//     log lines can be correlated across packages.
//   - Structured error markers plus the Wrap helper that let the orchestrator
//     and the CLI classify a failure without string matching.
//
// Use these helpers when adding pipeline steps so failures read the same way
// regardless of which step produced them.
package stage
