package handler

import (
	"fmt"
	"net/http"

	"github.com/vibes-app/vibes-backend/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "vibes_oracle_completions_total{kind=\"fortune\"} %d\n", snap.FortunesGenerated)
	writeMetric(w, "vibes_oracle_completions_total{kind=\"clarification\"} %d\n", snap.ClarificationsGenerated)
	writeMetric(w, "vibes_oracle_failures_total %d\n", snap.OracleFailures)
	writeMetric(w, "vibes_oracle_duration_seconds_count %d\n", snap.OracleDurationCount)
	writeMetric(w, "vibes_oracle_duration_seconds_sum %.6f\n", float64(snap.OracleDurationTotalNs)/1e9)

	writeMetric(w, "vibes_records_total{event=\"created\"} %d\n", snap.VibesCreated)
	writeMetric(w, "vibes_records_total{event=\"reset\"} %d\n", snap.VibesReset)
	writeMetric(w, "vibes_records_total{event=\"updated\"} %d\n", snap.VibesUpdated)
	writeMetric(w, "vibes_store_failures_total %d\n", snap.StoreFailures)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
