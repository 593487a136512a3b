package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kivutrips/internal/model"
	"kivutrips/internal/repository"
	"kivutrips/internal/service"
)

// ActivityHandler handles catalog endpoints.
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// CreateActivityRequest represents a new listing.
type CreateActivityRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Image       string `json:"image" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
	FullAddress string `json:"fullAddress"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	Contact     string `json:"contact"`
	Phone       string `json:"phone"`
	Featured    bool   `json:"featured"`
}

// UpdateActivityRequest represents a partial listing update. Omitted fields
// are preserved; present fields overwrite.
type UpdateActivityRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	FullAddress *string `json:"fullAddress"`
	Latitude    *string `json:"latitude"`
	Longitude   *string `json:"longitude"`
	Contact     *string `json:"contact"`
	Phone       *string `json:"phone"`
	Featured    *bool   `json:"featured"`
}

func (r *UpdateActivityRequest) toUpdate() repository.ActivityUpdate {
	return repository.ActivityUpdate{
		Name:        r.Name,
		Type:        r.Type,
		Image:       r.Image,
		Description: r.Description,
		Location:    r.Location,
		FullAddress: r.FullAddress,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Contact:     r.Contact,
		Phone:       r.Phone,
		Featured:    r.Featured,
	}
}

// List godoc
// @Summary List all activities
// @Tags activities
// @Produce json
// @Success 200 {array} model.Activity
// @Failure 500 {object} errors.ErrorResponse
// @Router /activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	activities, err := h.activityService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, activities)
}

// ListFeatured godoc
// @Summary List featured activities
// @Tags activities
// @Produce json
// @Success 200 {array} model.Activity
// @Failure 500 {object} errors.ErrorResponse
// @Router /activities/featured [get]
func (h *ActivityHandler) ListFeatured(c echo.Context) error {
	activities, err := h.activityService.ListFeatured(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, activities)
}

// Get godoc
// @Summary Fetch one activity by id
// @Tags activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} model.Activity
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /activities/{id} [get]
func (h *ActivityHandler) Get(c echo.Context) error {
	activity, err := h.activityService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, activity)
}

// Create godoc
// @Summary Create an activity
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateActivityRequest true "Activity payload"
// @Success 201 {object} model.Activity
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	var req CreateActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	activity := &model.Activity{
		Name:        req.Name,
		Type:        req.Type,
		Image:       req.Image,
		Description: req.Description,
		Location:    req.Location,
		FullAddress: req.FullAddress,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Contact:     req.Contact,
		Phone:       req.Phone,
		Featured:    req.Featured,
	}

	created, err := h.activityService.Create(c.Request().Context(), activity)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Update an activity
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Param request body UpdateActivityRequest true "Fields to change"
// @Success 200 {object} model.Activity
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /activities/{id} [put]
func (h *ActivityHandler) Update(c echo.Context) error {
	var req UpdateActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	activity, err := h.activityService.Update(c.Request().Context(), c.Param("id"), req.toUpdate())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, activity)
}

// Delete godoc
// @Summary Delete an activity
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(c echo.Context) error {
	if err := h.activityService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ToggleFeatured godoc
// @Summary Toggle the featured flag on an activity
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} model.Activity
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /activities/{id}/featured [put]
func (h *ActivityHandler) ToggleFeatured(c echo.Context) error {
	activity, err := h.activityService.ToggleFeatured(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, activity)
}
