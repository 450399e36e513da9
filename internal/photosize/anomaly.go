package photosize

import (
	"thumbnail-normalizer/internal/logging"
	"thumbnail-normalizer/internal/metrics"
)

// Anomaly kinds counted on the decode anomaly metric. Every recoverable
// protocol violation increments exactly one of these.
const (
	AnomalyBadDimension        = "bad_dimension"
	AnomalyBadType             = "bad_type"
	AnomalyEmptyScanList       = "empty_scan_list"
	AnomalyFormatMismatch      = "format_mismatch"
	AnomalyUnexpectedAttribute = "unexpected_attribute"
	AnomalyBadURL              = "bad_url"
	AnomalyBadPersistentID     = "bad_persistent_id"
)

func reportAnomaly(kind string, format string, args ...interface{}) {
	metrics.DecodeAnomalies.WithLabelValues(kind).Inc()
	logging.Error(format, args...)
}
