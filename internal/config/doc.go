// Package config loads the simfetch pipeline configuration from HCL.
//
// Configuration may be a single .hcl file or a directory of them; files are
// merged in path order. The loader exposes environment variables to
// expressions under the `env` object, so paths like
// `assets_dir = "${env.HOME}/assets"` work without shell plumbing. The
// resulting Config is an explicit value passed into every component
// constructor; nothing in this codebase reads ambient global configuration.
package config
