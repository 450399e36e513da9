package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	records := []string{"thumbnail", "animation", "web_document", "secret_thumbnail"}
	outcomes := []string{"ok", "empty", "inline"}

	for _, rec := range records {
		for _, out := range outcomes {
			DecodesTotal.WithLabelValues(rec, out)
		}
	}

	for _, kind := range []string{
		"bad_dimension", "bad_type", "empty_scan_list",
		"format_mismatch", "unexpected_attribute", "bad_url", "bad_persistent_id",
	} {
		DecodeAnomalies.WithLabelValues(kind)
	}

	for _, status := range []string{"ok", "too_short", "unknown_tag"} {
		MinithumbnailExpansions.WithLabelValues(status)
	}

	for _, kind := range []string{"new", "dedup", "content", "persistent_id"} {
		RegistrationsTotal.WithLabelValues(kind)
	}

	for _, op := range []string{
		"initialize_schema", "register", "set_content",
		"from_persistent_id", "get_file", "get_content", "count",
	} {
		RegistryQueryTotal.WithLabelValues(op, "success")
		RegistryQueryTotal.WithLabelValues(op, "error")
		RegistryQueryDuration.WithLabelValues(op)
	}
}
