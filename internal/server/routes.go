package server

import (
	"net/http"

	"foodorder/internal/config"
	"foodorder/internal/repository"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	// ヘルスチェック
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Food ordering API is running"})
	})

	api := e.Group("/api")
	h.Auth.RegisterRoutes(api, cfg, userRepo)
	h.Restaurants.RegisterRoutes(api, cfg, userRepo)
	h.Dishes.RegisterRoutes(api, cfg, userRepo)
	h.Cart.RegisterRoutes(api, cfg, userRepo)
	h.Orders.RegisterRoutes(api, cfg, userRepo)
	h.Payments.RegisterRoutes(api, cfg, userRepo)
}
