package handler

import (
	"net/http"
	"video-paywall-demo/internal/dto"
	"video-paywall-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	authService service.AuthService
}

func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if _, err := h.authService.Register(ctx, req.Username, req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.MessageResponse{Msg: "Registered successfully."})
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	token, user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.LoginResponse{
		Msg:      "Login successful.",
		Token:    token,
		Username: user.Username,
	})
}
