// Package registry is the identity registrar backing the decoders: it
// assigns deduplicated opaque handles to remote file locations and keeps
// them in a local SQLite database.
//
// A location is identified by its role plus either a remote ID and
// transport endpoint or a URL. Registering the same location twice
// returns the same handle and refreshes the stored access credential and
// file reference. Inline content received on the wire can be stored
// against a handle, and every registered file gets a persistent ID that
// survives restarts and can be resolved back to its handle.
package registry
