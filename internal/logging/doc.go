// Package logging provides the leveled logging used across the
// thumbnail normalizer.
//
// The level is configured once from the LOG_LEVEL environment variable
// (debug, info, warn, error); setting DEBUG=true forces debug output.
package logging
