package handler

import (
	"net/http"
	"time"
	"video-paywall-demo/internal/dto"
	"video-paywall-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.commentService.List(c.Request().Context(), c.Param("video_id"))
	if err != nil {
		return err
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp = append(resp, dto.CommentResponse{
			Email:     comment.Email,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt.UTC().Format(time.DateTime),
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if _, err := h.commentService.Add(ctx, c.Param("video_id"), req.Email, req.Content); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, &dto.MessageResponse{Msg: "Comment added"})
}
