package handler

import (
	"io"
	"net/http"
	"video-paywall-demo/internal/dto"
	"video-paywall-demo/internal/service"

	"github.com/labstack/echo/v4"
)

const paystackSignatureHeader = "x-paystack-signature"

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) InitPaystack(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.InitPaystack(ctx, req.VideoID, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) PaystackCallback(c echo.Context) error {
	ctx := c.Request().Context()

	reference := c.QueryParam("reference")
	if reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing reference")
	}

	result, err := h.checkoutService.VerifyPaystack(ctx, reference)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) PaystackWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	err = h.checkoutService.HandlePaystackWebhook(ctx, c.Request().Header.Get(paystackSignatureHeader), body)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

func (h *CheckoutHandler) InitBraintree(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.InitBraintree(ctx, req.VideoID, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) BraintreeCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BraintreeCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.CompleteBraintree(ctx, req.Reference, req.Nonce)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) BraintreeVerify(c echo.Context) error {
	ctx := c.Request().Context()

	reference := c.QueryParam("reference")
	if reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing reference")
	}

	result, err := h.checkoutService.VerifyBraintree(ctx, reference)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
