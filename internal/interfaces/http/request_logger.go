package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/radiator-inventory/pkg/logger"
)

// RequestObserver recibe cada request terminado (métricas Prometheus).
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra método, ruta, status y duración de cada request con zerolog.
// observer puede ser nil.
func RequestLogger(log *logger.Logger, observer RequestObserver) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// el ErrorHandler de la app fija el status final
			_ = c.App().ErrorHandler(c, err)
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		if observer != nil {
			observer.ObserveRequest(c.Method(), route, status, elapsed)
		}
		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}
