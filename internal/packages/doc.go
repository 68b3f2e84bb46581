// Package packages validates the package root of a deployment.
//
// The package root is the directory whose immediate subdirectories are the
// deployable units. Validate lists it exactly once; the resulting PackageSet
// is the snapshot the rest of the run reports from.
package packages
