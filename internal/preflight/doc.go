// Package preflight checks that the filesystem locations a deployment touches
// are usable before any archive is written.
package preflight
