package httpurl

import (
	"fmt"
	"net/url"
	"strings"
)

// URL is a parsed and normalized HTTP URL.
type URL struct {
	// Full is the normalized absolute URL.
	Full string
	// PathQuery is everything after the host, kept for deriving a file
	// name from the URL.
	PathQuery string
}

// Parse validates raw as an absolute HTTP or HTTPS URL. A missing scheme
// defaults to http. Any other scheme, a missing host, or a syntactically
// invalid URL is an error.
func Parse(raw string) (URL, error) {
	s := raw
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return URL{}, fmt.Errorf("failed to parse URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return URL{}, fmt.Errorf("unsupported scheme %q in URL %q", u.Scheme, raw)
	}
	if u.Host == "" {
		return URL{}, fmt.Errorf("no host in URL %q", raw)
	}

	pathQuery := u.EscapedPath()
	if u.RawQuery != "" {
		pathQuery += "?" + u.RawQuery
	}
	return URL{Full: u.String(), PathQuery: pathQuery}, nil
}

// QueryFileName derives a file name from the path-and-query portion of a
// URL: the segment after the last '/', cut at the first '?'. May be
// empty when the URL ends in a slash.
func QueryFileName(pathQuery string) string {
	if i := strings.IndexByte(pathQuery, '?'); i >= 0 {
		pathQuery = pathQuery[:i]
	}
	if i := strings.LastIndexByte(pathQuery, '/'); i >= 0 {
		pathQuery = pathQuery[i+1:]
	}
	return pathQuery
}
