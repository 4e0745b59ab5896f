// Package metrics defines and registers the custom Prometheus metrics of the
// user service. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default Prometheus registry on import.
// HTTP request metrics come from the echoprometheus middleware wired in the
// router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// ── User metrics ─────────────────────────────────────────────────────────────

// UsersWrittenTotal counts successful user writes.
// Label:
//   - operation: "create", "update" or "delete"
var UsersWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "written_total",
		Help:      "Total number of user documents created, updated or deleted.",
	},
	[]string{"operation"},
)

// ── Upload metrics ───────────────────────────────────────────────────────────

// UploadsTotal counts upload attempts by outcome.
// Label:
//   - result: "stored", "missing_file" or "failed"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of photo uploads, labelled by result.",
	},
	[]string{"result"},
)

// UploadSizeBytes observes the size of accepted uploads.
var UploadSizeBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Size of stored uploads in bytes.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB … 16MiB
	},
)

// ── Error metrics ────────────────────────────────────────────────────────────

// ErrorsTotal counts responses rendered by the HTTP error handler.
// Label:
//   - kind: normalised error category (e.g. "validation", "not_found", "internal", "route_not_found")
var ErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "errors_total",
		Help:      "Total number of error responses, by normalised error kind.",
	},
	[]string{"kind"},
)
