package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/app/services"
	"github.com/dstcrm/dstcrm/internal/middleware"
)

// UserController handles user administration and the registration whitelist
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers lists user accounts
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email query string false "Filter by email substring"
// @Param role query string false "Filter by role (admin, team, student)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(50)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Users"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	users, err := c.userService.ListUsers(ctx.Request.Context(), filter)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list users")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: users,
	})
}

// GetUser returns a single user account
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: user,
	})
}

// UpdateRole changes a user's role
// @Summary Update a user's role
// @Description Sets the user's role to admin, team or student
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Role updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID or role"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id}/role [patch]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userService.UpdateRole(ctx.Request.Context(), id, req.Role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", id).Str("role", req.Role).Msg("User role updated")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Role updated"},
	})
}

// DeleteUser removes a user account
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "User deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", id).Msg("User deleted")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "User deleted"},
	})
}

// AddAllowedEmail adds an email to the registration whitelist
// @Summary Whitelist an email
// @Description Adds an email address to the registration whitelist
// @Tags whitelist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddAllowedEmailRequest true "Email to whitelist"
// @Success 201 {object} dto.APIResponse{data=dto.AllowedEmailResponse} "Email whitelisted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email already whitelisted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /whitelist [post]
func (c *UserController) AddAllowedEmail(ctx *gin.Context) {
	var req dto.AddAllowedEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	entry, err := c.userService.AddAllowedEmail(ctx.Request.Context(), req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", req.Email).Msg("Email whitelisted")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: entry,
	})
}

// ListAllowedEmails lists the registration whitelist
// @Summary List whitelisted emails
// @Tags whitelist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AllowedEmailResponse} "Whitelist entries"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /whitelist [get]
func (c *UserController) ListAllowedEmails(ctx *gin.Context) {
	entries, err := c.userService.ListAllowedEmails(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list whitelist")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: entries,
	})
}

// RemoveAllowedEmail removes a whitelist entry
// @Summary Remove a whitelisted email
// @Tags whitelist
// @Produce json
// @Security BearerAuth
// @Param id path int true "Whitelist entry ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Entry removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid entry ID"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /whitelist/{id} [delete]
func (c *UserController) RemoveAllowedEmail(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.userService.RemoveAllowedEmail(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("entryID", id).Msg("Whitelist entry removed")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Entry removed"},
	})
}

// SubmitAccessRequest queues an access request for review
// @Summary Request registration access
// @Description Queues an access request for an email that is not yet whitelisted
// @Tags access-requests
// @Accept json
// @Produce json
// @Param request body dto.AccessRequestSubmission true "Email and optional note"
// @Success 201 {object} dto.APIResponse{data=dto.PendingRegistrationResponse} "Request queued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /access-requests [post]
func (c *UserController) SubmitAccessRequest(ctx *gin.Context) {
	var req dto.AccessRequestSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	request, err := c.userService.SubmitAccessRequest(ctx.Request.Context(), req.Email, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: request,
	})
}

// ListAccessRequests lists the queued access requests
// @Summary List access requests
// @Tags access-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PendingRegistrationResponse} "Queued requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /access-requests [get]
func (c *UserController) ListAccessRequests(ctx *gin.Context) {
	requests, err := c.userService.ListAccessRequests(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list access requests")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: requests,
	})
}

// ApproveAccessRequest whitelists a requested email
// @Summary Approve an access request
// @Description Adds the requested email to the whitelist and removes the request
// @Tags access-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.AllowedEmailResponse} "Email whitelisted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request ID"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Email already whitelisted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /access-requests/{id}/approve [post]
func (c *UserController) ApproveAccessRequest(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	entry, err := c.userService.ApproveAccessRequest(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("requestID", id).Str("email", entry.Email).Msg("Access request approved")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: entry,
	})
}

// RejectAccessRequest discards an access request
// @Summary Reject an access request
// @Tags access-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Request rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid request ID"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /access-requests/{id} [delete]
func (c *UserController) RejectAccessRequest(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.userService.RejectAccessRequest(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("requestID", id).Msg("Access request rejected")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Request rejected"},
	})
}

// pathID parses the numeric id path parameter. Writes the 400 response
// itself when the parameter is not a positive integer.
func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
