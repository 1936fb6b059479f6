// Package metrics provides Prometheus instrumentation for the backend:
// gauges for live connections and rooms, counters for event throughput.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConnectionsActive tracks the current number of live WebSocket connections.
	ConnectionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "studymatch_connections_active",
		Help: "Current number of active WebSocket connections",
	})

	// RoomsActive tracks how many users currently have at least one connection.
	RoomsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "studymatch_rooms_active",
		Help: "Current number of users with at least one live connection",
	})

	// EventsReceived counts client events by event name.
	EventsReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studymatch_events_received_total",
		Help: "Total client events received over live connections",
	}, []string{"event"})

	// EventsRejected counts client events rejected by validation or the
	// authorization gate, by event name.
	EventsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studymatch_events_rejected_total",
		Help: "Total client events rejected before taking effect",
	}, []string{"event"})

	// MessagesPersisted counts chat messages durably stored.
	MessagesPersisted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studymatch_messages_persisted_total",
		Help: "Total chat messages persisted",
	})

	// EventsDelivered counts server events delivered to local connections.
	EventsDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studymatch_events_delivered_total",
		Help: "Total server events delivered to local connections",
	})
)

func init() {
	prometheus.MustRegister(
		ConnectionsActive,
		RoomsActive,
		EventsReceived,
		EventsRejected,
		MessagesPersisted,
		EventsDelivered,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
