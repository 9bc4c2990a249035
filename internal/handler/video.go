package handler

import (
	"errors"
	"net/http"
	"video-paywall-demo/internal/dto"
	"video-paywall-demo/internal/middleware"
	"video-paywall-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type VideoHandler struct {
	catalogService service.CatalogService
	mediaService   service.MediaService
	ledgerService  service.LedgerService
}

func NewVideoHandler(
	catalogService service.CatalogService,
	mediaService service.MediaService,
	ledgerService service.LedgerService,
) *VideoHandler {
	return &VideoHandler{
		catalogService: catalogService,
		mediaService:   mediaService,
		ledgerService:  ledgerService,
	}
}

func (h *VideoHandler) List(c echo.Context) error {
	videos, err := h.catalogService.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, videos)
}

func (h *VideoHandler) Search(c echo.Context) error {
	videos, err := h.catalogService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, videos)
}

func (h *VideoHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return echo.NewHTTPError(http.StatusBadRequest, "No file")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body").SetInternal(err)
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	name, err := h.mediaService.Save(ctx, fh.Filename, src)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, &dto.MessageResponse{
		Msg: "Uploaded",
		URL: "/videos/" + name,
	})
}

func (h *VideoHandler) Serve(c echo.Context) error {
	path, err := h.mediaService.Path(c.Param("filename"))
	if err != nil {
		return err
	}

	return c.File(path)
}

// Watch streams a protected video to a caller who bought it.
func (h *VideoHandler) Watch(c echo.Context) error {
	ctx := c.Request().Context()

	path, err := h.ledgerService.PurchasedFile(ctx, c.Param("video_id"), middleware.CallerEmail(c))
	if err != nil {
		return err
	}

	return c.File(path)
}

func (h *VideoHandler) Purchases(c echo.Context) error {
	purchases, err := h.ledgerService.ListPurchases(c.Request().Context(), middleware.CallerEmail(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, purchases)
}
