package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// contextの is_seller を確認する。購入者は403
func SellerGuard(message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isSeller, ok := c.Get(CtxIsSellerKey).(bool)
			if !ok {
				return c.JSON(http.StatusUnauthorized, messageJSON("Invalid token"))
			}
			if !isSeller {
				return c.JSON(http.StatusForbidden, messageJSON(message))
			}
			return next(c)
		}
	}
}
