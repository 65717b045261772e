// Package assets provides the typed asset-handler registry.
//
// The Registry maps a handler name (the string identifier used in stage
// definitions, e.g. "config_json") to a concrete Handler implementation.
// Handlers are resolved once, at stage construction time, so an unknown name
// fails fast with a clear error instead of surfacing mid-execution. As with
// the rest of the registration machinery, registering the same name twice is
// a programmer error and panics.
package assets
