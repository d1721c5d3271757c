package server

import (
	"time"

	"app/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, log *logrus.Logger, h Handlers) {
	e.Use(requestLogger(log))

	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e, cfg)
	h.Restaurant.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
}

// リクエストごとの構造化ログ
func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			log.WithFields(logrus.Fields{
				"method":  c.Request().Method,
				"path":    c.Request().URL.Path,
				"status":  c.Response().Status,
				"latency": time.Since(start).String(),
			}).Info("request")

			return err
		}
	}
}
