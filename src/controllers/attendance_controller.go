package controllers

import (
	"fmt"

	"Backend-Student-Tracker/src/apperror"
	"Backend-Student-Tracker/src/models"
	"Backend-Student-Tracker/src/services/attendance"
	"Backend-Student-Tracker/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AttendanceController struct {
	svc *attendance.Service
}

func NewAttendanceController(svc *attendance.Service) *AttendanceController {
	return &AttendanceController{svc: svc}
}

// GetAllAttendance godoc
// @Summary      List attendance records of a student
// @Description  Filters are combined; results are sorted by createdAt, newest first
// @Tags         attendance
// @Produce      json
// @Param        id      path   string  true   "Student ID"
// @Param        month   query  int     false  "Month (1-12)"
// @Param        week    query  int     false  "Week (1-53)"
// @Param        status  query  string  false  "true for present, anything else for absent"
// @Success      200  {object}  models.Response{data=[]models.AttendanceEntry}
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /students/{id}/attendance [get]
func (h *AttendanceController) GetAllAttendance(c *fiber.Ctx) error {
	id := c.Params("id")
	filter := models.AttendanceFilter{
		Month:     c.Query("month"),
		Week:      c.Query("week"),
		Status:    c.Query("status"),
		HasStatus: c.Context().QueryArgs().Has("status"),
	}

	records, err := h.svc.List(c.UserContext(), id, filter)
	if err != nil {
		return utils.RespondError(c, fmt.Sprintf("Failed to retrieve attendance for student with ID: %s", id), err)
	}
	return utils.Success(c, fiber.StatusOK, "Attendance records retrieved successfully", records)
}

// GetAttendanceByID godoc
// @Summary      Get one attendance record
// @Tags         attendance
// @Produce      json
// @Param        id            path  string  true  "Student ID"
// @Param        attendanceId  path  string  true  "Attendance ID"
// @Success      200  {object}  models.Response{data=models.AttendanceEntry}
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /students/{id}/attendance/{attendanceId} [get]
func (h *AttendanceController) GetAttendanceByID(c *fiber.Ctx) error {
	id, attendanceID := c.Params("id"), c.Params("attendanceId")

	record, err := h.svc.Get(c.UserContext(), id, attendanceID)
	if err != nil {
		return utils.RespondError(c, fmt.Sprintf("Failed to retrieve attendance record with ID: %s for student with ID: %s", attendanceID, id), err)
	}
	return utils.Success(c, fiber.StatusOK, "Attendance record retrieved successfully", record)
}

// CreateAttendance godoc
// @Summary      Add an attendance record
// @Description  day, week, month and status are required; (day, week, month) must be unique per student
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Student ID"
// @Param        body  body  models.AttendanceInput  true  "Attendance record"
// @Success      201  {object}  models.Response{data=models.Student}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /students/{id}/attendance [post]
func (h *AttendanceController) CreateAttendance(c *fiber.Ctx) error {
	id := c.Params("id")
	failed := fmt.Sprintf("Failed to add attendance to student with ID: %s. Please check the input data.", id)

	input, err := parseAttendanceInput(c)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	student, err := h.svc.Create(c.UserContext(), id, input)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	return utils.Success(c, fiber.StatusCreated, "Attendance record added successfully", student)
}

// UpdateAttendance godoc
// @Summary      Update an attendance record
// @Description  Only the fields sent are changed
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        id            path  string                  true  "Student ID"
// @Param        attendanceId  path  string                  true  "Attendance ID"
// @Param        body          body  models.AttendanceInput  true  "Fields to change"
// @Success      200  {object}  models.Response{data=models.Student}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /students/{id}/attendance/{attendanceId} [put]
func (h *AttendanceController) UpdateAttendance(c *fiber.Ctx) error {
	id, attendanceID := c.Params("id"), c.Params("attendanceId")
	failed := fmt.Sprintf("Failed to update attendance with ID: %s for student with ID: %s. Please check the input data.", attendanceID, id)

	input, err := parseAttendanceInput(c)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	student, err := h.svc.Update(c.UserContext(), id, attendanceID, input)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	return utils.Success(c, fiber.StatusOK,
		fmt.Sprintf("Attendance record with ID: %s updated successfully for student with ID: %s", attendanceID, id), student)
}

// DeleteAttendance godoc
// @Summary      Delete an attendance record
// @Tags         attendance
// @Produce      json
// @Param        id            path  string  true  "Student ID"
// @Param        attendanceId  path  string  true  "Attendance ID"
// @Success      200  {object}  models.Response{data=models.Student}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /students/{id}/attendance/{attendanceId} [delete]
func (h *AttendanceController) DeleteAttendance(c *fiber.Ctx) error {
	id, attendanceID := c.Params("id"), c.Params("attendanceId")

	student, err := h.svc.Delete(c.UserContext(), id, attendanceID)
	if err != nil {
		return utils.RespondError(c, fmt.Sprintf("Failed to delete attendance record with ID: %s from student with ID: %s.", attendanceID, id), err)
	}
	return utils.Success(c, fiber.StatusOK,
		fmt.Sprintf("Attendance record with ID: %s deleted successfully from student with ID: %s", attendanceID, id), student)
}

// GetAttendanceStats godoc
// @Summary      Attendance statistics of a student
// @Description  Overall totals and a per-month breakdown over every record
// @Tags         attendance
// @Produce      json
// @Param        id  path  string  true  "Student ID"
// @Success      200  {object}  models.Response{data=models.AttendanceStats}
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /students/{id}/attendance/stats [get]
func (h *AttendanceController) GetAttendanceStats(c *fiber.Ctx) error {
	id := c.Params("id")

	stats, err := h.svc.Stats(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, fmt.Sprintf("Failed to retrieve attendance statistics for student with ID: %s", id), err)
	}
	return utils.Success(c, fiber.StatusOK, "Attendance statistics retrieved successfully", stats)
}

// parseAttendanceInput decodes the JSON body. An empty body is an empty input
// so the service can report the missing fields.
func parseAttendanceInput(c *fiber.Ctx) (models.AttendanceInput, error) {
	var input models.AttendanceInput
	body := c.Body()
	if len(body) == 0 {
		return input, nil
	}
	if err := c.App().Config().JSONDecoder(body, &input); err != nil {
		return input, apperror.Wrap(apperror.KindValidation, fmt.Errorf("invalid JSON body: %w", err))
	}
	return input, nil
}
