package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// MentionEventsEmitted counts mention events published to the notification sink.
	MentionEventsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_mention_events_emitted_total",
		Help: "Total number of mention events published",
	})

	// MentionEmitFailures counts mention events that failed to publish.
	MentionEmitFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_mention_emit_failures_total",
		Help: "Total number of mention events that failed to publish",
	})

	// WebSocketDrops counts outbound messages dropped by the hub per reason.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_websocket_drops_total",
		Help: "Total number of WebSocket messages dropped",
	}, []string{"reason"})

	// FeedPagesServed counts feed pages served by feed kind.
	FeedPagesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_feed_pages_served_total",
		Help: "Total number of feed pages served",
	}, []string{"kind"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware adapts the fiberprometheus middleware into a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
