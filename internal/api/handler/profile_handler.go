package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crackit360/practice-platform/internal/core/ports"
)

type createProfileRequest struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age"  validate:"gte=0"`
}

type createProfileResponse struct {
	ID string `json:"id"`
}

// ProfileHandler serves the minimal write-path connectivity check kept from
// the first iteration of the platform.
type ProfileHandler struct {
	profiles ports.ProfileRepository
}

func NewProfileHandler(profiles ports.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Create inserts a bare profile record.
//
// @Summary      Create a profile record
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      createProfileRequest  true  "Profile"
// @Success      201   {object}  createProfileResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/profile [post]
func (h *ProfileHandler) Create(c echo.Context) error {
	var req createProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.profiles.Insert(c.Request().Context(), req.Name, req.Age)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createProfileResponse{ID: id})
}
