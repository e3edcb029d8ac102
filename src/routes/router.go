package routes

import (
	"Backend-Student-Tracker/src/controllers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Handlers รวม controller ทุกตัวที่ต้องใช้ใน routes
type Handlers struct {
	Students   *controllers.StudentController
	Attendance *controllers.AttendanceController
	Badges     *controllers.BadgeController
}

func InitRoutes(app *fiber.App, h Handlers, uploadDir string) {
	// ไฟล์รูปที่อัปโหลด
	app.Static("/uploads", uploadDir)

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "hello world"})
	})

	studentRoutes(api, h.Students)
	attendanceRoutes(api.Group("/students/:id/attendance"), h.Attendance)
	attendanceRoutes(api.Group("/attendance/:id/attendance"), h.Attendance) // legacy mount
	badgeRoutes(api, h.Badges)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
