package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"video-paywall-demo/internal/model"
	"video-paywall-demo/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	service.AuthService
}

func (fakeAuth) ParseToken(token string) (*service.Claims, error) {
	if token != "good" {
		return nil, errors.Join(model.ErrInvalidCredentials, errors.New("bad token"))
	}
	return &service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a@x.com"}}, nil
}

func run(t *testing.T, header, query string) (string, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/video/vid1"+query, nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var email string
	err := AuthMiddleware(fakeAuth{})(func(c echo.Context) error {
		email = CallerEmail(c)
		return nil
	})(c)
	return email, err
}

func TestAuthMiddleware(t *testing.T) {
	email, err := run(t, "", "?email=q@x.com")
	require.NoError(t, err)
	assert.Equal(t, "q@x.com", email)

	email, err = run(t, "Bearer good", "?email=q@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email, "token wins over the query parameter")

	email, err = run(t, "bearer good", "")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)

	for _, header := range []string{"Bearer bad", "Basic abc", "Bearer", "Bearer "} {
		_, err = run(t, header, "")
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he, header)
		assert.Equal(t, http.StatusUnauthorized, he.Code, header)
	}
}
