package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "spotlight_redis_errors_total",
	Help: "Total number of Redis command errors",
}, []string{"command"})

// NotificationsFanned counts notification rows written, by type.
var NotificationsFanned = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "spotlight_notifications_fanout_total",
	Help: "Total number of notifications written as mutation side effects",
}, []string{"type"})

// WebhookEvents counts webhook deliveries by outcome.
var WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "spotlight_webhook_events_total",
	Help: "Total number of Clerk webhook deliveries by outcome",
}, []string{"outcome"})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-metrics Fiber handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
