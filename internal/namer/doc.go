// Package namer resolves path templates against a layered placeholder
// context.
//
// A template is a plain string containing `{name}` placeholders, optionally
// with a zero-padding width such as `sim{sim_num:04d}`. The Namer holds a
// base context for its whole lifetime; callers overlay extra bindings for
// the duration of a scope via PushContext and revert them with the returned
// restore function. Overlays stack, the innermost binding wins, and
// resolution is purely a function of the template and the effective context,
// so the same inputs always produce the same path.
package namer
