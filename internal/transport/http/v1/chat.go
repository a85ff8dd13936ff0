package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/stylist/internal/domain"
)

// Chat answers a text question or gives styling advice on an uploaded photo.
// POST /chat
//
// Accepts either a JSON body {"userInput": "..."} or a multipart form with an
// "image" file field. When both are sent the image wins.
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	req := &domain.ChatRequest{}
	if fh, err := c.FormFile("image"); err == nil {
		file, err := fh.Open()
		if err != nil {
			slog.Error("failed to open uploaded image", "request_id", requestID, "error", err)
			return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: domain.GenericFailureMessage})
		}
		defer file.Close()

		req.Image = file
		req.ImageName = fh.Filename
		req.UserInput = c.FormValue("userInput")
	} else {
		var body domain.TextRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "invalid request body"})
		}
		req.UserInput = body.UserInput
	}

	resp, err := h.service.HandleChat(ctx, requestID, req)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: err.Error()})
		}
		slog.Error("chat request failed", "request_id", requestID, "kind", req.Kind(), "error", err)
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: domain.GenericFailureMessage})
	}

	return c.JSON(http.StatusOK, resp)
}
