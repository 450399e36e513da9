// Package metrics provides Prometheus instrumentation for the thumbnail
// normalizer. All metrics are prefixed with "thumbnail_normalizer_".
//
// The decode anomaly counter doubles as the structured diagnostic channel
// for the decoder: every recoverable protocol violation (bad dimension,
// wrong type tag, empty scan list, format mismatch, unexpected attribute)
// increments exactly one labelled series, so both operators and tests can
// observe which defensive branch fired.
//
// Metrics are registered with the default registry via promauto. Expose
// them by mounting promhttp.Handler() on the metrics endpoint.
package metrics
