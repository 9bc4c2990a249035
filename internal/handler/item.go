package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"video-paywall-demo/internal/model"
	"video-paywall-demo/internal/repository"

	"github.com/labstack/echo/v4"
)

var errItemNotFound = echo.NewHTTPError(http.StatusNotFound, "Item not found")

type ItemHandler struct {
	itemRepo repository.ItemRepository
}

func NewItemHandler(itemRepo repository.ItemRepository) *ItemHandler {
	return &ItemHandler{
		itemRepo: itemRepo,
	}
}

func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.itemRepo.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) Create(c echo.Context) error {
	item, err := decodeItem(c)
	if err != nil {
		return err
	}

	created, err := h.itemRepo.Append(c.Request().Context(), item)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *ItemHandler) Get(c echo.Context) error {
	index, err := itemIndex(c)
	if err != nil {
		return err
	}

	item, err := h.itemRepo.Get(c.Request().Context(), index)
	if err != nil {
		return itemError(err)
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Update(c echo.Context) error {
	index, err := itemIndex(c)
	if err != nil {
		return err
	}

	patch, err := decodeItem(c)
	if err != nil {
		return err
	}

	item, err := h.itemRepo.Update(c.Request().Context(), index, patch)
	if err != nil {
		return itemError(err)
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Delete(c echo.Context) error {
	index, err := itemIndex(c)
	if err != nil {
		return err
	}

	if _, err := h.itemRepo.Delete(c.Request().Context(), index); err != nil {
		return itemError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// itemIndex treats a non numeric index like an out of range one.
func itemIndex(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, errItemNotFound
	}
	return index, nil
}

func itemError(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return errItemNotFound
	}
	return err
}

// decodeItem reads the body as a free form JSON object.
func decodeItem(c echo.Context) (model.Item, error) {
	var item model.Item
	if err := json.NewDecoder(c.Request().Body).Decode(&item); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	return item, nil
}
