package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/pkg/logger"
)

// HeaderRequestID header con el id de la petición (se respeta si el cliente lo envía).
const HeaderRequestID = "X-Request-ID"

// RequestLogger asigna un request id, deja un sublogger en Locals y registra cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(HeaderRequestID, reqID)
		c.Locals(LocalRequestID, reqID)
		reqLog := log.WithField("request_id", reqID)
		c.Locals(LocalLogger, reqLog)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler escriba la respuesta antes de registrar el status
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}
