package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/app/services"
	"github.com/dstcrm/dstcrm/internal/middleware"
)

// StudentController handles student record operations
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// CreateStudent creates a student record manually
// @Summary Create a student
// @Description Creates a student record. Period, amount and region are canonicalized on write.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student record"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or amount"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Str("mail", req.Mail).Msg("Failed to create student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("studentID", student.ID).Str("mail", student.Mail).Msg("Student created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: student,
	})
}

// ListStudents lists student records
// @Summary List students
// @Description Lists all students, optionally filtered by region code
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param region query string false "Region code filter (e.g. BA, KE)"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Students"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var region *string
	if value := ctx.Query("region"); value != "" {
		region = &value
	}

	students, err := c.studentService.ListStudents(ctx.Request.Context(), region)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: students,
	})
}

// GetStudent returns a single student record
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: student,
	})
}

// UpdateStudent edits a student record
// @Summary Update a student
// @Description Updates the provided fields of a student record; omitted fields stay unchanged
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or amount"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("studentID", student.ID).Msg("Student updated")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: student,
	})
}

// UpdateAmount overrides a student's base amount
// @Summary Override a student's amount
// @Description Sets the student's base membership amount used for expected payment calculations
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentAmountRequest true "New amount"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Amount updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/amount [patch]
func (c *StudentController) UpdateAmount(ctx *gin.Context) {
	var req dto.UpdateStudentAmountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.studentService.UpdateAmount(ctx.Request.Context(), ctx.Param("id"), req.Amount); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("studentID", ctx.Param("id")).Str("amount", req.Amount).Msg("Student amount updated")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Amount updated"},
	})
}

// DeleteStudent removes a student record
// @Summary Delete a student
// @Description Deletes a student; payments matched to the student become unmatched
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("studentID", ctx.Param("id")).Msg("Student deleted")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Student deleted"},
	})
}

// GetOwnProfile returns the student record of the signed-in user
// @Summary Get own membership profile
// @Description Returns the student record matching the signed-in user's email, with matched payments and the next deadline
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Membership profile"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "No student record for this email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/me [get]
func (c *StudentController) GetOwnProfile(ctx *gin.Context) {
	email, exists := ctx.Get("email")
	emailStr, ok := email.(string)
	if !exists || !ok || emailStr == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.studentService.ProfileByEmail(ctx.Request.Context(), emailStr)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: profile,
	})
}
