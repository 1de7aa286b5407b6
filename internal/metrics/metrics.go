// Package metrics exposes Prometheus counters and histograms for
// driver-level observability of a Styler invocation, registered with
// the default Prometheus registry, grounded on bittoy-rule's engine/metrics.go
// (package-level CounterVec/HistogramVec registered in init()).
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	parseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "styler",
			Subsystem: "parser",
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing one source file.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"version"},
	)

	ruleDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "styler",
			Subsystem: "rule",
			Name:      "rule_duration_seconds",
			Help:      "Time spent running one rule's Analyze or Format.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"rule_id", "operation"},
	)

	violationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "styler",
			Subsystem: "rule",
			Name:      "violations_total",
			Help:      "Total violations reported, by rule and severity.",
		},
		[]string{"rule_id", "severity"},
	)

	filesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "styler",
			Subsystem: "driver",
			Name:      "files_processed_total",
			Help:      "Total files processed, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(parseDuration, ruleDuration, violationsTotal, filesProcessedTotal)
}

// ObserveParseDuration records how long parsing a file at the given
// language version took, in seconds.
func ObserveParseDuration(version int, seconds float64) {
	parseDuration.WithLabelValues(versionLabel(version)).Observe(seconds)
}

// ObserveRuleDuration records how long a rule's operation ("analyze" or
// "format") took, in seconds.
func ObserveRuleDuration(ruleID, operation string, seconds float64) {
	ruleDuration.WithLabelValues(ruleID, operation).Observe(seconds)
}

// IncViolations increments the violation counter for a rule/severity
// pair.
func IncViolations(ruleID, severity string) {
	violationsTotal.WithLabelValues(ruleID, severity).Inc()
}

// IncFilesProcessed increments the processed-files counter for an
// outcome ("formatted", "unchanged", "error").
func IncFilesProcessed(outcome string) {
	filesProcessedTotal.WithLabelValues(outcome).Inc()
}

func versionLabel(version int) string {
	if version <= 0 {
		return "unknown"
	}
	return strconv.Itoa(version)
}
