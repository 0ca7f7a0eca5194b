package middleware

import (
	"errors"
	"net/http"

	"foodorder/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// JWTのtvとDBのtoken_versionの一致するか確認。
// DBの is_seller も最新の値で上書きする
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, messageJSON("Invalid token"))
			}

			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return c.JSON(http.StatusUnauthorized, messageJSON("Invalid token"))
			}

			//DBから最新のuserを取得する
			ctx := c.Request().Context()
			user, err := userRepo.FindByID(ctx, userID)
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, messageJSON("Invalid token"))
			}
			if err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("token version lookup failed")
				return c.JSON(http.StatusInternalServerError, messageJSON("Server error"))
			}

			//token_version が一致しなければ強制ログアウト扱い（401）
			if user.TokenVersion != tv {
				return c.JSON(http.StatusUnauthorized, messageJSON("Invalid token"))
			}

			c.Set(CtxIsSellerKey, user.IsSeller)
			return next(c)
		}
	}
}
