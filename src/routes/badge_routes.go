package routes

import (
	"Backend-Student-Tracker/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func badgeRoutes(router fiber.Router, h *controllers.BadgeController) {
	badgeGroup := router.Group("/badges")
	badgeGroup.Get("/", h.GetBadges)
	badgeGroup.Post("/", h.CreateBadge)
	badgeGroup.Get("/:id", h.GetBadge)
	badgeGroup.Put("/:id", h.UpdateBadge)
	badgeGroup.Delete("/:id", h.DeleteBadge)
}
