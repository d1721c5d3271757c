package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey   = "cart_session_id" // string
	sessionCookieName = "cart_session"
)

// カートセッションのCookieを保証するミドルウェア。
// 無ければuuidを発行してセッションCookieとして返す（ブラウザを閉じたら消える）
func CartSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     sessionCookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					// MaxAge未指定＝セッションCookie
				})
			}

			c.Set(CtxSessionIDKey, sessionID)
			return next(c)
		}
	}
}
