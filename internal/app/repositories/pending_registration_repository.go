package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
	"github.com/dstcrm/dstcrm/internal/pkg/logger"
)

// PendingRegistrationRepository handles access request database operations
type PendingRegistrationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPendingRegistrationRepository creates a new PendingRegistrationRepository
func NewPendingRegistrationRepository(db *pgxpool.Pool) *PendingRegistrationRepository {
	return &PendingRegistrationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateRequest stores a new access request
func (r *PendingRegistrationRepository) CreateRequest(ctx context.Context, email, message string) (*models.PendingRegistration, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("pending_registrations").
		Columns("email", "message", "requested_at").
		Values(email, message, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create access request query: %w", err)
	}

	req := &models.PendingRegistration{Email: email, Message: message, RequestedAt: now}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&req.ID); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error executing create access request query")
		return nil, fmt.Errorf("error creating access request: %w", err)
	}
	return req, nil
}

// GetRequestByID retrieves one access request
func (r *PendingRegistrationRepository) GetRequestByID(ctx context.Context, id int64) (*models.PendingRegistration, error) {
	sql, args, err := r.sb.Select("id", "email", "message", "requested_at").
		From("pending_registrations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get access request query: %w", err)
	}

	req := &models.PendingRegistration{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&req.ID, &req.Email, &req.Message, &req.RequestedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("requestID", id).Msg("Error executing get access request query")
		return nil, fmt.Errorf("error getting access request: %w", err)
	}
	return req, nil
}

// GetAllRequests retrieves every pending access request, newest first
func (r *PendingRegistrationRepository) GetAllRequests(ctx context.Context) ([]*models.PendingRegistration, error) {
	sql, args, err := r.sb.Select("id", "email", "message", "requested_at").
		From("pending_registrations").
		OrderBy("requested_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list access requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list access requests query")
		return nil, fmt.Errorf("error querying access requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.PendingRegistration{}
	for rows.Next() {
		req := &models.PendingRegistration{}
		if err := rows.Scan(&req.ID, &req.Email, &req.Message, &req.RequestedAt); err != nil {
			return nil, fmt.Errorf("error scanning access request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating access request rows: %w", err)
	}
	return requests, nil
}

// DeleteRequest removes an access request
func (r *PendingRegistrationRepository) DeleteRequest(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("pending_registrations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete access request query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("requestID", id).Msg("Error executing delete access request query")
		return fmt.Errorf("error deleting access request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
