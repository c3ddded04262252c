package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var latencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcs_http_requests_total",
		Help: "Total number of HTTP requests by route and status code",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gcs_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by route",
		Buckets: latencyBuckets,
	}, []string{"method", "route"})

	parcelsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcs_parcels_created_total",
		Help: "Total number of parcels created by parcel type",
	}, []string{"parcel_type"})

	parcelStatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcs_parcel_status_transitions_total",
		Help: "Total number of applied parcel status transitions",
	}, []string{"from", "to"})

	trackingLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcs_tracking_lookups_total",
		Help: "Public tracking lookups by outcome (found, not_found, cache_hit)",
	}, []string{"result"})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcs_parcel_notifications_total",
		Help: "Parcel status notifications handled by the worker",
	}, []string{"result"})
)

// Handler Prometheus 抓取端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest 记录一次 HTTP 请求
func ObserveHTTPRequest(method, route string, status int, start time.Time) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// IncParcelCreated 记录一次下单
func IncParcelCreated(parcelType string) {
	parcelsCreatedTotal.WithLabelValues(parcelType).Inc()
}

// IncStatusTransition 记录一次状态流转
func IncStatusTransition(from, to string) {
	parcelStatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

// IncTrackingLookup 记录一次公开查询
func IncTrackingLookup(result string) {
	trackingLookupsTotal.WithLabelValues(result).Inc()
}

// IncNotification 记录通知处理结果
func IncNotification(result string) {
	notificationsTotal.WithLabelValues(result).Inc()
}
