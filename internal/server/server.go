package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Restaurant *handler.RestaurantHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Order      *handler.OrderHandler
}

func Start(cfg config.Config, log *logrus.Logger, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	RegisterRoutes(e, cfg, log, h)

	addr := cfg.Port
	if addr == "" {
		addr = "8080"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.WithField("addr", addr).Info("server starting")
	return e.Start(addr)
}
