// Package httpurl validates and normalizes the HTTP URLs that reference
// externally hosted thumbnails.
package httpurl
