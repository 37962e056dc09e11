package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
	"github.com/dstcrm/dstcrm/internal/pkg/dberrors"
	"github.com/dstcrm/dstcrm/internal/pkg/logger"
)

// AllowedEmailRepository handles whitelist database operations
type AllowedEmailRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAllowedEmailRepository creates a new AllowedEmailRepository
func NewAllowedEmailRepository(db *pgxpool.Pool) *AllowedEmailRepository {
	return &AllowedEmailRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ExistsEmail reports whether an email is on the whitelist. The comparison
// is case-insensitive.
func (r *AllowedEmailRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("allowed_emails").
		Where("LOWER(email) = LOWER(?)", email).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build whitelist lookup query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing whitelist lookup query")
		return false, fmt.Errorf("error checking whitelist: %w", err)
	}
	return count > 0, nil
}

// AddEmail adds an email to the whitelist and returns the new entry
func (r *AllowedEmailRepository) AddEmail(ctx context.Context, email string) (*models.AllowedEmail, error) {
	exists, err := r.ExistsEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	now := time.Now()
	sql, args, err := r.sb.Insert("allowed_emails").
		Columns("email", "added_at").
		Values(email, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build add whitelist email query: %w", err)
	}

	entry := &models.AllowedEmail{Email: email, AddedAt: now}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID); err != nil {
		// The pre-check races with concurrent inserts; the index settles it.
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", email).Msg("Error executing add whitelist email query")
		return nil, fmt.Errorf("error adding whitelist email: %w", err)
	}
	return entry, nil
}

// GetAllEmails retrieves the full whitelist ordered by email
func (r *AllowedEmailRepository) GetAllEmails(ctx context.Context) ([]*models.AllowedEmail, error) {
	sql, args, err := r.sb.Select("id", "email", "added_at").
		From("allowed_emails").
		OrderBy("email ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list whitelist query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list whitelist query")
		return nil, fmt.Errorf("error querying whitelist: %w", err)
	}
	defer rows.Close()

	entries := []*models.AllowedEmail{}
	for rows.Next() {
		entry := &models.AllowedEmail{}
		if err := rows.Scan(&entry.ID, &entry.Email, &entry.AddedAt); err != nil {
			return nil, fmt.Errorf("error scanning whitelist row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating whitelist rows: %w", err)
	}
	return entries, nil
}

// DeleteEmail removes a whitelist entry
func (r *AllowedEmailRepository) DeleteEmail(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("allowed_emails").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete whitelist email query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("entryID", id).Msg("Error executing delete whitelist email query")
		return fmt.Errorf("error deleting whitelist email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
