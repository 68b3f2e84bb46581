// Package main hosts the eccdeploy CLI entrypoint and command graph.
//
// The root command runs a single deployment: it reads step inputs from
// INPUT_* variables, lets flags override them, and hands everything to the
// pipeline package. Subcommands check a workspace without uploading, scaffold
// and display configuration, and print build information.
//
// Keep this package thin. Behavior belongs in the internal packages; commands
// here only wire configuration, logging and the notification sink together.
package main
