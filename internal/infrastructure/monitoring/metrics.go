package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type ImportMetrics struct {
	RowsImportedTotal *prometheus.CounterVec
	RowErrorsTotal    *prometheus.CounterVec
	ImportDuration    *prometheus.HistogramVec
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autohaus_crm_http_requests_total",
				Help: "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autohaus_crm_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autohaus_crm_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Import = ImportMetrics{
		RowsImportedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autohaus_crm_import_rows_total",
				Help: "Total number of CSV rows successfully applied, by entity.",
			},
			[]string{"entity"},
		),
		RowErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autohaus_crm_import_row_errors_total",
				Help: "Total number of CSV rows rejected with a row-level error, by entity.",
			},
			[]string{"entity"},
		),
		ImportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autohaus_crm_import_duration_seconds",
				Help:    "Histogram of full import call durations, by entity.",
				Buckets: []float64{.01, .05, .1, .5, 1, 5, 15, 60},
			},
			[]string{"entity"},
		),
	}
)

func RecordHTTPRequest(method, path string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(d.Seconds())
}

func RecordDBQuery(queryName, status string, d time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(d.Seconds())
}

func ObserveImportDuration(entity string, d time.Duration) {
	Import.ImportDuration.WithLabelValues(entity).Observe(d.Seconds())
}

func RecordImportRows(entity string, applied, failed int) {
	if applied > 0 {
		Import.RowsImportedTotal.WithLabelValues(entity).Add(float64(applied))
	}
	if failed > 0 {
		Import.RowErrorsTotal.WithLabelValues(entity).Add(float64(failed))
	}
}
