package routes

import (
	"Backend-Student-Tracker/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// attendanceRoutes router is already scoped to one student (:id).
func attendanceRoutes(router fiber.Router, h *controllers.AttendanceController) {
	router.Get("/", h.GetAllAttendance)
	router.Post("/", h.CreateAttendance)
	router.Get("/stats", h.GetAttendanceStats) // ต้องอยู่ก่อน /:attendanceId
	router.Get("/:attendanceId", h.GetAttendanceByID)
	router.Put("/:attendanceId", h.UpdateAttendance)
	router.Delete("/:attendanceId", h.DeleteAttendance)
}
