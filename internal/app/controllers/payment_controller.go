package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/billing"
	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/app/services"
	"github.com/dstcrm/dstcrm/internal/middleware"
)

// PaymentController handles bank payment and reconciliation operations
type PaymentController struct {
	paymentService   *services.PaymentService
	reconcileService *services.ReconcileService
	logger           zerolog.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService *services.PaymentService, reconcileService *services.ReconcileService, logger zerolog.Logger) *PaymentController {
	return &PaymentController{
		paymentService:   paymentService,
		reconcileService: reconcileService,
		logger:           logger,
	}
}

// ListPayments lists bank payments
// @Summary List payments
// @Description Lists bank payments, newest first, optionally filtered by match status or variable symbol
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param matchStatus query string false "Filter by match status (matched, unmatched, ambiguous)"
// @Param vs query string false "Filter by variable symbol"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(50)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Payments"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	var filter dto.PaymentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	payments, err := c.paymentService.ListPayments(ctx.Request.Context(), filter)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list payments")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: payments,
	})
}

// GetPayment returns a single payment
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentResponse} "Payment"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{id} [get]
func (c *PaymentController) GetPayment(ctx *gin.Context) {
	payment, err := c.paymentService.GetPayment(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: payment,
	})
}

// DeletePayment removes a payment
// @Summary Delete a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Payment deleted"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{id} [delete]
func (c *PaymentController) DeletePayment(ctx *gin.Context) {
	if err := c.paymentService.DeletePayment(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("paymentID", ctx.Param("id")).Msg("Payment deleted")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Payment deleted"},
	})
}

// AutoPair pairs unmatched payments with students by variable symbol
// @Summary Auto-pair payments
// @Description Matches every payment whose variable symbol identifies exactly one student. Payments whose symbol matches several students are flagged ambiguous. Running twice changes nothing.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AutoPairResponse} "Pairing summary"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/auto-pair [post]
func (c *PaymentController) AutoPair(ctx *gin.Context) {
	summary, err := c.reconcileService.AutoPair(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Auto-pairing failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int("matched", summary.Matched).
		Int("ambiguous", summary.Ambiguous).
		Int("demoted", summary.Demoted).
		Int("unchanged", summary.Unchanged).
		Msg("Auto-pairing finished")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: summary,
	})
}

// AssignPayment manually pairs a payment with a student
// @Summary Assign a payment to a student
// @Description Manually pairs a payment with a student, overriding any previous match
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body dto.AssignPaymentRequest true "Target student"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Payment assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Payment or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{id}/assign [post]
func (c *PaymentController) AssignPayment(ctx *gin.Context) {
	var req dto.AssignPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.reconcileService.AssignPayment(ctx.Request.Context(), ctx.Param("id"), req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("paymentID", ctx.Param("id")).
		Str("studentID", req.StudentID).
		Msg("Payment assigned")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Payment assigned"},
	})
}

// UnassignPayment clears a payment's match
// @Summary Unassign a payment
// @Description Clears the payment's student match and marks it unmatched
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Payment unassigned"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{id}/assign [delete]
func (c *PaymentController) UnassignPayment(ctx *gin.Context) {
	if err := c.reconcileService.UnassignPayment(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("paymentID", ctx.Param("id")).Msg("Payment unassigned")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Payment unassigned"},
	})
}

// InstallmentsReport reports per-student payment standing for an installment
// @Summary Installment standing report
// @Description Lists every student with the expected amount, paid total and derived status for the selected installment index (1-10), optionally filtered by status
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param installment query int false "Installment index (1-10)" default(1)
// @Param status query string false "Filter by status (paid, partial, unpaid, overpaid)"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentInstallmentResponse} "Report rows"
// @Failure 400 {object} dto.ErrorResponse "Invalid status filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/installments [get]
func (c *PaymentController) InstallmentsReport(ctx *gin.Context) {
	installment := billing.MinInstallment
	if raw := ctx.Query("installment"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid installment index")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		installment = parsed
	}

	var statusFilter *models.PaymentStatus
	if raw := ctx.Query("status"); raw != "" {
		status := models.PaymentStatus(raw)
		switch status {
		case models.StatusPaid, models.StatusPartial, models.StatusUnpaid, models.StatusOverpaid:
			statusFilter = &status
		default:
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	rows, err := c.reconcileService.InstallmentsReport(ctx.Request.Context(), installment, statusFilter)
	if err != nil {
		c.logger.Error().Err(err).Msg("Installments report failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: rows,
	})
}
