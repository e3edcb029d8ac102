package routes

import (
	"Backend-Student-Tracker/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// studentRoutes กำหนดเส้นทางสำหรับ Student API
func studentRoutes(router fiber.Router, h *controllers.StudentController) {
	studentGroup := router.Group("/students")
	studentGroup.Get("/", h.GetStudents)                          // ดึงนักเรียนทั้งหมด
	studentGroup.Get("/filters", h.FilterStudents)                // ค้นหา ต้องอยู่ก่อน /:id
	studentGroup.Post("/", h.CreateStudent)                       // สร้างนักเรียนใหม่
	studentGroup.Get("/:id", h.GetStudent)                        // ดึงข้อมูลนักเรียนตาม ID
	studentGroup.Put("/:id", h.UpdateStudent)                     // อัปเดตข้อมูลนักเรียน
	studentGroup.Delete("/:id", h.DeleteStudent)                  // ลบนักเรียน
	studentGroup.Post("/:id/ratings", h.AddRating)                // เพิ่มคะแนน
	studentGroup.Put("/:id/ratings/:ratingId", h.UpdateRating)    // แก้ไขคะแนน
	studentGroup.Delete("/:id/ratings/:ratingId", h.DeleteRating) // ลบคะแนน
	studentGroup.Post("/:id/badges", h.AddBadge)                  // มอบเหรียญ
	studentGroup.Delete("/:id/badges/:badgeId", h.RemoveBadge)    // ถอนเหรียญ
}
