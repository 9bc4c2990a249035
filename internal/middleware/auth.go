package middleware

import (
	"net/http"
	"strings"
	"video-paywall-demo/internal/service"

	"github.com/labstack/echo/v4"
)

// EmailKey holds the authenticated caller's email in the echo context.
const EmailKey = "email"

// AuthMiddleware accepts an optional "Authorization: Bearer <jwt>" header.
// Requests without one pass through untouched; a malformed or expired
// token is rejected with 401.
func AuthMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := authService.ParseToken(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			c.Set(EmailKey, claims.Subject)
			return next(c)
		}
	}
}

// CallerEmail prefers the token's email and falls back to the email query
// parameter.
func CallerEmail(c echo.Context) string {
	if email, ok := c.Get(EmailKey).(string); ok && email != "" {
		return email
	}
	return c.QueryParam("email")
}
