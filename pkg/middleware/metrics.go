package middleware

import (
	"strconv"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct{}

func NewMetricsMiddleware() Middleware {
	return &metricsMiddleware{}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok { //nolint:errorlint
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		prometheus.HTTPRequestsTotal.WithLabelValues(c.Method(), route, statusClass(status)).Inc()
		prometheus.HTTPRequestLatency.WithLabelValues(c.Method(), route).
			Observe(float64(time.Since(start).Milliseconds()))
		return err
	}
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "5xx"
	}
	return strconv.Itoa(status/100) + "xx"
}
