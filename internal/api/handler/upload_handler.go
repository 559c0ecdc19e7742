package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crackit360/practice-platform/internal/api/metrics"
	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/security"
)

type uploadResponse struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Digest string `json:"digest"`
}

type UploadHandler struct {
	validator *security.UploadValidator
}

func NewUploadHandler(validator *security.UploadValidator) *UploadHandler {
	return &UploadHandler{validator: validator}
}

// Upload accepts a multipart file, streams it through validation and stores
// it under a randomized name.
//
// @Summary      Upload a file
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "File to upload"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      413   {object}  errorResponse
// @Router       /api/uploads [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	if _, err := ctxUser(c); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return err
	}
	defer src.Close()

	result, err := h.validator.Validate(src, fileHeader.Filename)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(uploadOutcome(err)).Inc()
		return err
	}
	metrics.UploadsTotal.WithLabelValues("accepted").Inc()

	return c.JSON(http.StatusCreated, uploadResponse{
		Name:   result.Name,
		Size:   result.Size,
		Digest: result.Digest,
	})
}

func uploadOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrTooLarge):
		return "too_large"
	case errors.Is(err, domain.ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, domain.ErrSuspiciousType):
		return "suspicious_type"
	default:
		return "error"
	}
}
