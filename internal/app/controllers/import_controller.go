package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/app/services"
	"github.com/dstcrm/dstcrm/internal/middleware"
)

// ImportController handles bulk JSON imports of students and bank payments
type ImportController struct {
	importService *services.ImportService
	logger        zerolog.Logger
}

// NewImportController creates a new ImportController
func NewImportController(importService *services.ImportService, logger zerolog.Logger) *ImportController {
	return &ImportController{
		importService: importService,
		logger:        logger,
	}
}

// ImportStudents imports a student JSON array
// @Summary Import students
// @Description Imports a JSON array of student records. Records missing mail, name or surname, or carrying an unparseable amount, are counted as errors; the rest are written.
// @Tags import
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []dto.ImportStudentItem true "Student records"
// @Success 200 {object} dto.APIResponse{data=dto.ImportSummary} "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Body is not a JSON array"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /import/students [post]
func (c *ImportController) ImportStudents(ctx *gin.Context) {
	var items []dto.ImportStudentItem
	if err := ctx.ShouldBindJSON(&items); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student import payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	summary, err := c.importService.ImportStudents(ctx.Request.Context(), items)
	if err != nil {
		c.logger.Error().Err(err).Msg("Student import failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int("success", summary.SuccessCount).
		Int("errors", summary.ErrorCount).
		Msg("Student import finished")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: summary,
	})
}

// ImportPayments imports a bank statement JSON array
// @Summary Import payments
// @Description Imports a JSON array of bank payments. Malformed amounts and dates are tolerated; every record is written unmatched.
// @Tags import
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []dto.ImportPaymentItem true "Bank payments"
// @Success 200 {object} dto.APIResponse{data=dto.ImportSummary} "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Body is not a JSON array"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /import/payments [post]
func (c *ImportController) ImportPayments(ctx *gin.Context) {
	var items []dto.ImportPaymentItem
	if err := ctx.ShouldBindJSON(&items); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid payment import payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	summary, err := c.importService.ImportPayments(ctx.Request.Context(), items)
	if err != nil {
		c.logger.Error().Err(err).Msg("Payment import failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int("success", summary.SuccessCount).
		Int("errors", summary.ErrorCount).
		Msg("Payment import finished")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: summary,
	})
}
