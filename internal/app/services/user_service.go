package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
	"github.com/dstcrm/dstcrm/internal/pkg/helpers"
)

// UserAdminStore covers the user management operations
type UserAdminStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUsersPage(ctx context.Context, filter dto.UserFilterRequest) ([]*models.User, int64, error)
	UpdateUserRole(ctx context.Context, id int64, role models.RoleType) error
	DeleteUser(ctx context.Context, id int64) error
}

// WhitelistStore covers whitelist management
type WhitelistStore interface {
	AddEmail(ctx context.Context, email string) (*models.AllowedEmail, error)
	GetAllEmails(ctx context.Context) ([]*models.AllowedEmail, error)
	DeleteEmail(ctx context.Context, id int64) error
}

// RegistrationQueueStore covers the access request queue
type RegistrationQueueStore interface {
	CreateRequest(ctx context.Context, email, message string) (*models.PendingRegistration, error)
	GetRequestByID(ctx context.Context, id int64) (*models.PendingRegistration, error)
	GetAllRequests(ctx context.Context) ([]*models.PendingRegistration, error)
	DeleteRequest(ctx context.Context, id int64) error
}

// UserService handles user, whitelist and access request administration
type UserService struct {
	users         UserAdminStore
	whitelist     WhitelistStore
	registrations RegistrationQueueStore
	logger        zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users UserAdminStore, whitelist WhitelistStore, registrations RegistrationQueueStore, logger zerolog.Logger) *UserService {
	return &UserService{
		users:         users,
		whitelist:     whitelist,
		registrations: registrations,
		logger:        logger,
	}
}

// GetUser retrieves one user
func (s *UserService) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers retrieves a filtered page of users
func (s *UserService) ListUsers(ctx context.Context, filter dto.UserFilterRequest) (*dto.PaginatedResponse, error) {
	users, total, err := s.users.GetUsersPage(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}

	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// UpdateRole changes a user's role
func (s *UserService) UpdateRole(ctx context.Context, id int64, role string) error {
	roleType := models.RoleType(role)
	if !roleType.IsValid() {
		return apperrors.ErrInvalidRole
	}

	if err := s.users.UpdateUserRole(ctx, id, roleType); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", id).Str("role", role).Msg("User role updated")
	return nil
}

// DeleteUser removes a user account
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.DeleteUser(ctx, id)
}

// AddAllowedEmail adds an email to the registration whitelist. Uniqueness is
// case-insensitive and checked before insert.
func (s *UserService) AddAllowedEmail(ctx context.Context, email string) (*dto.AllowedEmailResponse, error) {
	entry, err := s.whitelist.AddEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	return &dto.AllowedEmailResponse{
		ID:      entry.ID,
		Email:   entry.Email,
		AddedAt: entry.AddedAt,
	}, nil
}

// ListAllowedEmails retrieves the whitelist
func (s *UserService) ListAllowedEmails(ctx context.Context) ([]dto.AllowedEmailResponse, error) {
	entries, err := s.whitelist.GetAllEmails(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AllowedEmailResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.AllowedEmailResponse{
			ID:      entry.ID,
			Email:   entry.Email,
			AddedAt: entry.AddedAt,
		})
	}
	return out, nil
}

// RemoveAllowedEmail deletes a whitelist entry
func (s *UserService) RemoveAllowedEmail(ctx context.Context, id int64) error {
	return s.whitelist.DeleteEmail(ctx, id)
}

// SubmitAccessRequest queues an access request for an email that is not on
// the whitelist. The email is stored lowercased.
func (s *UserService) SubmitAccessRequest(ctx context.Context, email, message string) (*dto.PendingRegistrationResponse, error) {
	req, err := s.registrations.CreateRequest(ctx,
		strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(message))
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", req.Email).Msg("Access request submitted")
	resp := toPendingRegistrationResponse(req)
	return &resp, nil
}

// ListAccessRequests retrieves the queued access requests, newest first
func (s *UserService) ListAccessRequests(ctx context.Context) ([]dto.PendingRegistrationResponse, error) {
	requests, err := s.registrations.GetAllRequests(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PendingRegistrationResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, toPendingRegistrationResponse(req))
	}
	return out, nil
}

// ApproveAccessRequest whitelists the requested email and removes the
// request from the queue. Fails with ErrEmailAlreadyExists when the email
// is already whitelisted, leaving the request in place.
func (s *UserService) ApproveAccessRequest(ctx context.Context, id int64) (*dto.AllowedEmailResponse, error) {
	req, err := s.registrations.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry, err := s.whitelist.AddEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.registrations.DeleteRequest(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", req.Email).Int64("requestID", id).Msg("Access request approved")
	return &dto.AllowedEmailResponse{
		ID:      entry.ID,
		Email:   entry.Email,
		AddedAt: entry.AddedAt,
	}, nil
}

// RejectAccessRequest removes an access request without whitelisting
func (s *UserService) RejectAccessRequest(ctx context.Context, id int64) error {
	req, err := s.registrations.GetRequestByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.registrations.DeleteRequest(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("email", req.Email).Int64("requestID", id).Msg("Access request rejected")
	return nil
}

func toPendingRegistrationResponse(req *models.PendingRegistration) dto.PendingRegistrationResponse {
	return dto.PendingRegistrationResponse{
		ID:          req.ID,
		Email:       req.Email,
		Message:     req.Message,
		RequestedAt: req.RequestedAt,
	}
}
