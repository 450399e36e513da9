// Package startup handles configuration loading, build information, and
// the structured startup/shutdown log output.
package startup
