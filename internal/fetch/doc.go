// Package fetch downloads remote dataset archives and unpacks them into a
// deterministic destination directory.
//
// The Retriever is idempotent: when the destination already exists the call
// is a no-op, so callers may invoke it redundantly across sessions or
// processes. Downloads land in a private directory under the caller's temp
// dir and extraction happens in a process-unique staging directory that is
// atomically renamed onto the destination, so no partial state is ever
// visible under the destination path. All temporary directories are removed
// on every exit path.
//
// The package knows nothing of link tables or path naming; it operates on an
// already-resolved Descriptor and two paths.
package fetch
