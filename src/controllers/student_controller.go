package controllers

import (
	"fmt"
	"mime/multipart"
	"strings"

	"Backend-Student-Tracker/src/apperror"
	"Backend-Student-Tracker/src/models"
	"Backend-Student-Tracker/src/services/students"
	"Backend-Student-Tracker/src/utils"

	"github.com/gofiber/fiber/v2"
)

type StudentController struct {
	svc *students.Service
}

func NewStudentController(svc *students.Service) *StudentController {
	return &StudentController{svc: svc}
}

// GetStudents godoc
// @Summary      List students
// @Description  Paginated list with badges populated
// @Tags         students
// @Produce      json
// @Param        page   query  int  false  "Page number" default(1)
// @Param        limit  query  int  false  "Page size" default(20)
// @Success      200  {object}  models.Response{data=[]models.StudentDetail}
// @Failure      500  {object}  models.ErrorResponse
// @Router       /students [get]
func (h *StudentController) GetStudents(c *fiber.Ctx) error {
	list, meta, err := h.svc.List(c.UserContext(), models.StudentFilter{}, paginationFromQuery(c))
	if err != nil {
		return utils.RespondError(c, "Failed to retrieve students.", err)
	}
	return utils.SuccessPage(c, "Students retrieved successfully", list, meta)
}

// FilterStudents godoc
// @Summary      Filter students
// @Description  Case-insensitive partial match; a student matching ANY given field is returned
// @Tags         students
// @Produce      json
// @Param        name         query  string  false  "Name"
// @Param        email        query  string  false  "Email"
// @Param        studentCode  query  string  false  "Student code"
// @Param        phone        query  string  false  "Phone"
// @Param        page         query  int     false  "Page number" default(1)
// @Param        limit        query  int     false  "Page size" default(20)
// @Success      200  {object}  models.Response{data=[]models.StudentDetail}
// @Failure      500  {object}  models.ErrorResponse
// @Router       /students/filters [get]
func (h *StudentController) FilterStudents(c *fiber.Ctx) error {
	var filter models.StudentFilter
	if err := c.QueryParser(&filter); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Failed to filter students.", err)
	}
	list, meta, err := h.svc.List(c.UserContext(), filter, paginationFromQuery(c))
	if err != nil {
		return utils.RespondError(c, "Failed to filter students.", err)
	}
	return utils.SuccessPage(c, "Students retrieved successfully", list, meta)
}

// GetStudent godoc
// @Summary      Get a student
// @Tags         students
// @Produce      json
// @Param        id  path  string  true  "Student ID"
// @Success      200  {object}  models.Response{data=models.StudentDetail}
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /students/{id} [get]
func (h *StudentController) GetStudent(c *fiber.Ctx) error {
	id := c.Params("id")
	student, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, fmt.Sprintf("An error occurred while retrieving the student with ID: %s", id), err)
	}
	return utils.Success(c, fiber.StatusOK, "Student retrieved successfully", student)
}

// CreateStudent godoc
// @Summary      Create a student
// @Description  multipart/form-data with an optional photo (jpeg, jpg, png, gif; max 5MB)
// @Tags         students
// @Accept       mpfd
// @Produce      json
// @Param        name   formData  string  true   "Name"
// @Param        email  formData  string  true   "Email"
// @Param        phone  formData  string  true   "Phone"
// @Param        photo  formData  file    false  "Photo"
// @Success      201  {object}  models.Response{data=models.Student}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /students [post]
func (h *StudentController) CreateStudent(c *fiber.Ctx) error {
	const failed = "Failed to create student. Please check the input data."

	var req models.CreateStudentRequest
	if c.Is("json") {
		if err := c.BodyParser(&req); err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, failed, err)
		}
	} else {
		req.Name, req.Email, req.Phone = c.FormValue("name"), c.FormValue("email"), c.FormValue("phone")
	}

	photo, err := optionalFile(c, "photo")
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, failed, err)
	}
	student, err := h.svc.Create(c.UserContext(), req, photo)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	return utils.Success(c, fiber.StatusCreated, "Student created successfully", student)
}

// UpdateStudent godoc
// @Summary      Update a student
// @Description  Only the fields sent are changed; a new photo replaces the old one
// @Tags         students
// @Accept       mpfd
// @Produce      json
// @Param        id     path      string  true   "Student ID"
// @Param        name   formData  string  false  "Name"
// @Param        email  formData  string  false  "Email"
// @Param        phone  formData  string  false  "Phone"
// @Param        photo  formData  file    false  "Photo"
// @Success      200  {object}  models.Response{data=models.Student}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /students/{id} [put]
func (h *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id := c.Params("id")
	failed := fmt.Sprintf("Failed to update student with ID: %s. Please check the input data.", id)

	var req models.UpdateStudentRequest
	if c.Is("json") {
		if err := c.BodyParser(&req); err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, failed, err)
		}
	} else {
		req.Name, req.Email, req.Phone = optionalField(c, "name"), optionalField(c, "email"), optionalField(c, "phone")
	}

	photo, err := optionalFile(c, "photo")
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, failed, err)
	}
	student, err := h.svc.Update(c.UserContext(), id, req, photo)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	return utils.Success(c, fiber.StatusOK, "Student updated successfully", student)
}

// DeleteStudent godoc
// @Summary      Delete a student
// @Tags         students
// @Produce      json
// @Param        id  path  string  true  "Student ID"
// @Success      200  {object}  models.Response
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /students/{id} [delete]
func (h *StudentController) DeleteStudent(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.RespondError(c, "Failed to delete student", err)
	}
	return utils.Success(c, fiber.StatusOK, "Student deleted successfully", nil)
}

// AddRating godoc
// @Summary      Add a rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Student ID"
// @Param        body  body  models.RatingInput  true  "Rating"
// @Success      200  {object}  models.Response{data=models.Student}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /students/{id}/ratings [post]
func (h *StudentController) AddRating(c *fiber.Ctx) error {
	id := c.Params("id")
	failed := fmt.Sprintf("Failed to add rating to student with ID: %s. Please check the input data.", id)

	input, err := parseRatingInput(c)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	student, err := h.svc.AddRating(c.UserContext(), id, input)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	return utils.Success(c, fiber.StatusOK, "Rating added successfully", student)
}

// UpdateRating godoc
// @Summary      Update a rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        id        path  string              true  "Student ID"
// @Param        ratingId  path  string              true  "Rating ID"
// @Param        body      body  models.RatingInput  true  "Fields to change"
// @Success      200  {object}  models.Response{data=models.Student}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /students/{id}/ratings/{ratingId} [put]
func (h *StudentController) UpdateRating(c *fiber.Ctx) error {
	id, ratingID := c.Params("id"), c.Params("ratingId")
	failed := fmt.Sprintf("Failed to update rating with ID: %s for student with ID: %s. Please check the input data.", ratingID, id)

	input, err := parseRatingInput(c)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	student, err := h.svc.UpdateRating(c.UserContext(), id, ratingID, input)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	return utils.Success(c, fiber.StatusOK,
		fmt.Sprintf("Rating with ID: %s updated successfully for student with ID: %s", ratingID, id), student)
}

// DeleteRating godoc
// @Summary      Delete a rating
// @Tags         ratings
// @Produce      json
// @Param        id        path  string  true  "Student ID"
// @Param        ratingId  path  string  true  "Rating ID"
// @Success      200  {object}  models.Response{data=models.Student}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /students/{id}/ratings/{ratingId} [delete]
func (h *StudentController) DeleteRating(c *fiber.Ctx) error {
	id, ratingID := c.Params("id"), c.Params("ratingId")

	student, err := h.svc.DeleteRating(c.UserContext(), id, ratingID)
	if err != nil {
		return utils.RespondError(c, fmt.Sprintf("Failed to delete rating with ID: %s from student with ID: %s.", ratingID, id), err)
	}
	return utils.Success(c, fiber.StatusOK,
		fmt.Sprintf("Rating with ID: %s deleted successfully from student with ID: %s", ratingID, id), student)
}

// AddBadge godoc
// @Summary      Assign a badge to a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Student ID"
// @Param        body  body  models.AssignBadgeRequest  true  "Badge"
// @Success      200  {object}  models.Response{data=models.StudentDetail}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /students/{id}/badges [post]
func (h *StudentController) AddBadge(c *fiber.Ctx) error {
	id := c.Params("id")
	failed := fmt.Sprintf("Failed to add badge to student with ID: %s. Please check the input data.", id)

	var req models.AssignBadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, failed, err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.RespondError(c, failed, err)
	}
	student, err := h.svc.AssignBadge(c.UserContext(), id, req.BadgeID)
	if err != nil {
		return utils.RespondError(c, failed, err)
	}
	return utils.Success(c, fiber.StatusOK, fmt.Sprintf("Badge added to student with ID: %s successfully", id), student)
}

// RemoveBadge godoc
// @Summary      Remove a badge from a student
// @Tags         students
// @Produce      json
// @Param        id       path  string  true  "Student ID"
// @Param        badgeId  path  string  true  "Badge ID"
// @Success      200  {object}  models.Response{data=models.StudentDetail}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /students/{id}/badges/{badgeId} [delete]
func (h *StudentController) RemoveBadge(c *fiber.Ctx) error {
	id, badgeID := c.Params("id"), c.Params("badgeId")

	student, err := h.svc.RemoveBadge(c.UserContext(), id, badgeID)
	if err != nil {
		return utils.RespondError(c, fmt.Sprintf("Failed to remove badge with ID: %s from student with ID: %s.", badgeID, id), err)
	}
	return utils.Success(c, fiber.StatusOK,
		fmt.Sprintf("Badge with ID: %s removed from student with ID: %s successfully", badgeID, id), student)
}

// paginationFromQuery ค่า 0 หรืออ่านไม่ได้ใช้ค่า default; negative values are normalized later.
func paginationFromQuery(c *fiber.Ctx) models.PaginationParams {
	params := models.DefaultPagination()
	if page := c.QueryInt("page"); page != 0 {
		params.Page = page
	}
	if limit := c.QueryInt("limit"); limit != 0 {
		params.Limit = limit
	}
	return params
}

// optionalFile returns nil when the field was not sent.
func optionalFile(c *fiber.Ctx, field string) (*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	return files[0], nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// optionalField distinguishes a form field that was not sent from one sent empty.
func optionalField(c *fiber.Ctx, key string) *string {
	if form, err := c.MultipartForm(); err == nil {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			v := vals[0]
			return &v
		}
		return nil
	}
	args := c.Request().PostArgs()
	if args.Has(key) {
		v := string(args.Peek(key))
		return &v
	}
	return nil
}

func parseRatingInput(c *fiber.Ctx) (models.RatingInput, error) {
	var input models.RatingInput
	body := c.Body()
	if len(body) == 0 {
		return input, nil
	}
	if err := c.App().Config().JSONDecoder(body, &input); err != nil {
		return input, apperror.Wrap(apperror.KindValidation, fmt.Errorf("invalid JSON body: %w", err))
	}
	return input, nil
}
