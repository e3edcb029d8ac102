package controllers

import (
	"Backend-Student-Tracker/src/models"
	"Backend-Student-Tracker/src/services/badges"
	"Backend-Student-Tracker/src/utils"

	"github.com/gofiber/fiber/v2"
)

type BadgeController struct {
	svc *badges.Service
}

func NewBadgeController(svc *badges.Service) *BadgeController {
	return &BadgeController{svc: svc}
}

// GetBadges godoc
// @Summary      List badges
// @Tags         badges
// @Produce      json
// @Success      200  {object}  models.Response{data=[]models.Badge}
// @Failure      500  {object}  models.ErrorResponse
// @Router       /badges [get]
func (h *BadgeController) GetBadges(c *fiber.Ctx) error {
	list, err := h.svc.List(c.UserContext())
	if err != nil {
		return utils.RespondError(c, "Failed to retrieve badges", err)
	}
	return utils.Success(c, fiber.StatusOK, "Badges retrieved successfully", list)
}

// GetBadge godoc
// @Summary      Get a badge
// @Tags         badges
// @Produce      json
// @Param        id  path  string  true  "Badge ID"
// @Success      200  {object}  models.Response{data=models.Badge}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /badges/{id} [get]
func (h *BadgeController) GetBadge(c *fiber.Ctx) error {
	badge, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.RespondError(c, "Failed to retrieve badge", err)
	}
	return utils.Success(c, fiber.StatusOK, "Badge retrieved successfully", badge)
}

// CreateBadge godoc
// @Summary      Create a badge
// @Tags         badges
// @Accept       mpfd
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        image        formData  file    true   "Image"
// @Success      201  {object}  models.Response{data=models.Badge}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /badges [post]
func (h *BadgeController) CreateBadge(c *fiber.Ctx) error {
	const failed = "Failed to create badge. Please check the input data."

	req := models.CreateBadgeRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, failed, err)
	}
	badge, err := h.svc.Create(c.UserContext(), req, image)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	return utils.Success(c, fiber.StatusCreated, "Badge created successfully", badge)
}

// UpdateBadge godoc
// @Summary      Update a badge
// @Description  Empty fields keep their current value
// @Tags         badges
// @Accept       mpfd
// @Produce      json
// @Param        id           path      string  true   "Badge ID"
// @Param        title        formData  string  false  "Title"
// @Param        description  formData  string  false  "Description"
// @Param        image        formData  file    false  "Image"
// @Success      200  {object}  models.Response{data=models.Badge}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /badges/{id} [put]
func (h *BadgeController) UpdateBadge(c *fiber.Ctx) error {
	const failed = "Failed to update badge. Please check the input data."

	req := models.UpdateBadgeRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, failed, err)
	}
	badge, err := h.svc.Update(c.UserContext(), c.Params("id"), req, image)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	return utils.Success(c, fiber.StatusOK, "Badge updated successfully", badge)
}

// DeleteBadge godoc
// @Summary      Delete a badge
// @Tags         badges
// @Produce      json
// @Param        id  path  string  true  "Badge ID"
// @Success      200  {object}  models.Response
// @Failure      404  {object}  models.ErrorResponse
// @Router       /badges/{id} [delete]
func (h *BadgeController) DeleteBadge(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.RespondError(c, "Failed to delete badge", err)
	}
	return utils.Success(c, fiber.StatusOK, "Badge deleted successfully", nil)
}
