package handlers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"thumbnail-normalizer/internal/registry"
)

type Handlers struct {
	registry  *registry.Registry
	startTime time.Time
}

func New(reg *registry.Registry) *Handlers {
	return &Handlers{
		registry:  reg,
		startTime: time.Now(),
	}
}

// MetricsHandler returns the Prometheus scrape handler for the decoder
// and registry metrics.
func (h *Handlers) MetricsHandler() http.Handler {
	return promhttp.Handler()
}
