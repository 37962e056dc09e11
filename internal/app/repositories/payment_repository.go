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
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
	"github.com/dstcrm/dstcrm/internal/pkg/helpers"
	"github.com/dstcrm/dstcrm/internal/pkg/logger"
)

var paymentColumns = []string{
	"id", "vs", "amount_cents", "date", "message", "sender_name",
	"sender_iban", "matched_student_id", "match_status", "created_at",
}

// PaymentRepository handles payment database operations
type PaymentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(
		&p.ID, &p.VS, &p.Amount, &p.Date, &p.Message, &p.SenderName,
		&p.SenderIBAN, &p.MatchedStudentID, &p.MatchStatus, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// BulkInsertPayments inserts payments in chunked batches, returning the
// number of rows written.
func (r *PaymentRepository) BulkInsertPayments(ctx context.Context, payments []*models.Payment) (int, error) {
	written := 0
	now := time.Now()

	for start := 0; start < len(payments); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(payments) {
			end = len(payments)
		}

		batch := &pgx.Batch{}
		for _, p := range payments[start:end] {
			sql, args, err := r.sb.Insert("payments").
				Columns("vs", "amount_cents", "date", "message", "sender_name",
					"sender_iban", "matched_student_id", "match_status", "created_at").
				Values(p.VS, p.Amount, p.Date, p.Message, p.SenderName,
					p.SenderIBAN, p.MatchedStudentID, p.MatchStatus, now).
				ToSql()
			if err != nil {
				return written, fmt.Errorf("failed to build bulk insert query: %w", err)
			}
			batch.Queue(sql, args...)
		}

		br := r.db.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			logger.Error().Err(err).Int("chunkStart", start).Msg("Error executing payment insert batch")
			return written, fmt.Errorf("error inserting payment batch: %w", err)
		}
		written += end - start
	}

	return written, nil
}

// GetPaymentByID retrieves a payment by id
func (r *PaymentRepository) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	sql, args, err := r.sb.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get payment query: %w", err)
	}

	payment, err := scanPayment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		logger.Error().Err(err).Str("paymentID", id).Msg("Error scanning payment row")
		return nil, fmt.Errorf("error getting payment by id: %w", err)
	}
	return payment, nil
}

// GetAllPayments retrieves every payment ordered by date, newest first
func (r *PaymentRepository) GetAllPayments(ctx context.Context) ([]*models.Payment, error) {
	sql, args, err := r.sb.Select(paymentColumns...).
		From("payments").
		OrderBy("date DESC NULLS LAST", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all payments query: %w", err)
	}

	return r.queryPayments(ctx, sql, args)
}

// GetPaymentsPage retrieves a filtered page of payments plus the total count
func (r *PaymentRepository) GetPaymentsPage(ctx context.Context, filter dto.PaymentFilterRequest) ([]*models.Payment, int64, error) {
	where := squirrel.And{}
	if filter.MatchStatus != nil {
		where = append(where, squirrel.Eq{"match_status": *filter.MatchStatus})
	}
	if filter.VS != nil {
		where = append(where, squirrel.Eq{"vs": models.NormalizeVS(*filter.VS)})
	}

	countQuery := r.sb.Select("COUNT(*)").From("payments")
	if len(where) > 0 {
		countQuery = countQuery.Where(where)
	}
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count payments query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting payments")
		return nil, 0, fmt.Errorf("error counting payments: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	query := r.sb.Select(paymentColumns...).
		From("payments").
		OrderBy("date DESC NULLS LAST", "created_at DESC").
		Offset(offset).
		Limit(uint64(limit))
	if len(where) > 0 {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list payments query: %w", err)
	}

	payments, err := r.queryPayments(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// GetPaymentsByStudent retrieves all payments matched to a student
func (r *PaymentRepository) GetPaymentsByStudent(ctx context.Context, studentID string) ([]*models.Payment, error) {
	sql, args, err := r.sb.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"matched_student_id": studentID}).
		OrderBy("date ASC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build payments by student query: %w", err)
	}

	return r.queryPayments(ctx, sql, args)
}

func (r *PaymentRepository) queryPayments(ctx context.Context, sql string, args []interface{}) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing payments query")
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// UpdateMatch sets a payment's match fields
func (r *PaymentRepository) UpdateMatch(ctx context.Context, paymentID string, matchedStudentID *string, status models.MatchStatus) error {
	sql, args, err := r.sb.Update("payments").
		Set("matched_student_id", matchedStudentID).
		Set("match_status", status).
		Where(squirrel.Eq{"id": paymentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update match query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("paymentID", paymentID).Msg("Error executing update match query")
		return fmt.Errorf("error updating payment match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}
	return nil
}

// BulkUpdateMatches applies match updates in chunked batches. Used by
// auto-pairing, which only submits rows whose resolved state differs from
// the stored one.
func (r *PaymentRepository) BulkUpdateMatches(ctx context.Context, updates []models.MatchUpdate) error {
	for start := 0; start < len(updates); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(updates) {
			end = len(updates)
		}

		batch := &pgx.Batch{}
		for _, u := range updates[start:end] {
			sql, args, err := r.sb.Update("payments").
				Set("matched_student_id", u.MatchedStudentID).
				Set("match_status", u.MatchStatus).
				Where(squirrel.Eq{"id": u.PaymentID}).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build bulk match update query: %w", err)
			}
			batch.Queue(sql, args...)
		}

		br := r.db.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			logger.Error().Err(err).Int("chunkStart", start).Msg("Error executing match update batch")
			return fmt.Errorf("error applying match update batch: %w", err)
		}
	}
	return nil
}

// DeletePayment removes a payment record
func (r *PaymentRepository) DeletePayment(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete payment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("paymentID", id).Msg("Error executing delete payment query")
		return fmt.Errorf("error deleting payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}
	return nil
}
