package handlers

import (
	"net/http"

	"thumbnail-normalizer/internal/startup"
)

// VersionResponse is the build information plus the service name, so one
// scrape target among many identifies itself.
type VersionResponse struct {
	Service string `json:"service"`
	startup.BuildInfo
}

// GetVersion returns the service name and build information
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, VersionResponse{
		Service:   "thumbnail-normalizer",
		BuildInfo: startup.GetBuildInfo(),
	})
}
