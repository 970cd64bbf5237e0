package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP 请求与订单结果的基础指标，/metrics 由 promhttp 暴露。
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rental_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	OrdersSubmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_orders_submitted_total",
		Help: "Reservation submissions by outcome.",
	}, []string{"outcome"})

	OrdersConfirmedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_orders_confirmed_total",
		Help: "Order confirmations by outcome.",
	}, []string{"outcome"})
)
