// error_utils.go
package utils

import (
	"errors"

	"Backend-Student-Tracker/src/apperror"
	"Backend-Student-Tracker/src/models"

	"github.com/gofiber/fiber/v2"
)

// HandleError ส่ง error envelope พร้อม status ที่กำหนดเอง
func HandleError(c *fiber.Ctx, status int, message string, err error) error {
	resp := models.ErrorResponse{
		Status:  models.StatusError,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.Status(status).JSON(resp)
}

// StatusFor maps an error to an HTTP status by its kind.
func StatusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	kind := apperror.KindOf(err)
	switch {
	case kind.IsNotFound():
		return fiber.StatusNotFound
	case kind.IsBadInput():
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondError picks the status from the error kind; message describes the failed operation.
func RespondError(c *fiber.Ctx, message string, err error) error {
	return HandleError(c, StatusFor(err), message, err)
}

// Success ส่ง envelope สำเร็จ
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(models.Response{
		Status:  models.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// SuccessPage ส่ง envelope พร้อมข้อมูลการแบ่งหน้า
func SuccessPage(c *fiber.Ctx, message string, data interface{}, meta *models.PaginationMeta) error {
	return c.Status(fiber.StatusOK).JSON(models.Response{
		Status:     models.StatusSuccess,
		Message:    message,
		Data:       data,
		Pagination: meta,
	})
}
