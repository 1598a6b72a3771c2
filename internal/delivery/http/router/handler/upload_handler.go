package handler

import (
	"log/slog"
	"net/http"

	"forge/internal/delivery/http/response"
	"forge/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UploadHandler accepts binary uploads and returns the storage key that
// later requests reference, e.g. gallery images and HR documents.
type UploadHandler struct {
	storage service.FileStorage
	logger  *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(storage service.FileStorage, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		storage: storage,
		logger:  logger,
	}
}

// Upload stores a multipart file under the "uploads" prefix.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "upload file is missing")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	stored, err := h.storage.Save(
		c.Request().Context(),
		"uploads",
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, stored)
}
