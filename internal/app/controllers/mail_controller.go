package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/app/services"
	"github.com/dstcrm/dstcrm/internal/middleware"
)

// MailController handles bulk mail relay operations
type MailController struct {
	mailService *services.MailService
	logger      zerolog.Logger
}

// NewMailController creates a new MailController
func NewMailController(mailService *services.MailService, logger zerolog.Logger) *MailController {
	return &MailController{
		mailService: mailService,
		logger:      logger,
	}
}

// SendMail sends a notification to each recipient separately
// @Summary Send bulk mail
// @Description Sends the message to every recipient as a separate mail. Recipients never see each other. Partial failures are reported per recipient.
// @Tags mail
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMailRequest true "Recipients and message"
// @Success 200 {object} dto.APIResponse{data=dto.SendMailResponse} "Send results"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or no recipients"
// @Failure 500 {object} dto.ErrorResponse "Every send failed or internal error"
// @Router /mail/send [post]
func (c *MailController) SendMail(ctx *gin.Context) {
	var req dto.SendMailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.mailService.Send(ctx.Request.Context(), req.Recipients, req.Subject, req.Body)
	if err != nil {
		c.logger.Error().Err(err).Int("recipients", len(req.Recipients)).Msg("Bulk mail failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int("sent", result.Count).
		Int("recipients", len(req.Recipients)).
		Msg("Bulk mail finished")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: result,
	})
}

// SendMailLegacy serves the historical send-mail endpoint
// @Summary Send bulk mail (legacy)
// @Description Accepts the historical body shape where bcc may be a single address or an array. Responds with the bare result object.
// @Tags mail
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LegacyMailRequest true "Legacy mail request"
// @Success 200 {object} dto.SendMailResponse "Send results"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or no recipients"
// @Failure 500 {object} dto.ErrorResponse "Every send failed"
// @Router /send-mail [post]
func (c *MailController) SendMailLegacy(ctx *gin.Context) {
	var req dto.LegacyMailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.mailService.Send(ctx.Request.Context(), req.BCC, req.Subject, req.Text)
	if err != nil {
		c.logger.Error().Err(err).Int("recipients", len(req.BCC)).Msg("Legacy bulk mail failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Legacy clients expect the bare result object.
	ctx.JSON(http.StatusOK, result)
}
