package handler

import (
	"errors"
	"net/http"
	"strings"
	"video-paywall-demo/internal/model"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorMapping struct {
	err     error
	code    int
	message string
}

// errorMappings is checked in order; the first sentinel found in the chain wins.
var errorMappings = []errorMapping{
	{model.ErrEmailTaken, http.StatusBadRequest, "Email already registered."},
	{model.ErrInvalidVideo, http.StatusBadRequest, "Invalid video"},
	{model.ErrMissingEmail, http.StatusBadRequest, "Email required"},
	{model.ErrDuplicateReference, http.StatusBadRequest, "Duplicate reference"},
	{model.ErrInvalidInput, http.StatusBadRequest, "Invalid input"},
	{model.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials."},
	{model.ErrInvalidSignature, http.StatusUnauthorized, "Invalid signature"},
	{model.ErrUnauthorized, http.StatusForbidden, "No purchase found"},
	{model.ErrForbiddenDomain, http.StatusForbidden, "Email domain not allowed"},
	{model.ErrNotFound, http.StatusNotFound, "Not found"},
	{model.ErrGateway, http.StatusBadGateway, "Payment gateway error"},
}

// detailed sentinels carry a client facing message after "sentinel: ".
var detailed = map[error]bool{
	model.ErrInvalidInput:    true,
	model.ErrForbiddenDomain: true,
}

func toHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		msg := m.message
		if detailed[m.err] {
			if _, detail, ok := strings.Cut(err.Error(), m.err.Error()+": "); ok && detail != "" {
				msg = detail
			}
		}
		return echo.NewHTTPError(m.code, msg).SetInternal(err)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

// ErrorHandler renders every error as {"error": msg} and logs server side
// failures.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := toHTTPError(err)
		if he.Code >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", he.Code),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, map[string]interface{}{"error": he.Message})
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}
