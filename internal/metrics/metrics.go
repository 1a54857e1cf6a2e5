package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatline_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatline_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatline_users_registered_total",
			Help: "Total users registered",
		},
	)

	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatline_messages_sent_total",
			Help: "Total messages durably appended",
		},
	)

	MessagesDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatline_messages_delivered_total",
			Help: "Total live push deliveries (one per target connection)",
		},
	)

	DeliveryDrops = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatline_delivery_drops_total",
			Help: "Deliveries skipped because a connection was dead or saturated",
		},
	)

	// Realtime metrics
	LiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatline_live_connections",
			Help: "Currently registered websocket connections",
		},
	)
)
