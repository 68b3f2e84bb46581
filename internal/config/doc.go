// Package config loads, normalizes, and validates eccdeploy configuration.
//
// It supplies defaults for the hosting endpoint, archive naming, logging and
// optional ntfy forwarding, reads an optional eccdeploy.toml file, and applies
// environment overrides such as ECCDEPLOY_ENDPOINT and RUNNER_DEBUG. The
// process environment is captured once into an Environment snapshot built
// from an injected lookup function, so resolution logic never reads os.Getenv
// directly and tests can supply a plain map.
package config
