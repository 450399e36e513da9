// Package handlers implements the HTTP API: JSON decode endpoints for the
// thumbnail wire records, minithumbnail expansion, registered-file
// lookup, and the health/version/metrics endpoints.
package handlers
