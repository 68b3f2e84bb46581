// Package logging assembles structured slog loggers for eccdeploy.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline steps tag their log
// lines with the run ID and stage automatically. Credentials must go through
// Secret so they are never written in full.
package logging
