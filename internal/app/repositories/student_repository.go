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

// maxBatchSize bounds the number of statements queued into a single pgx
// batch. Each chunk is atomic on its own; a failure mid-import leaves prior
// chunks committed.
const maxBatchSize = 450

var studentColumns = []string{
	"id", "name", "surname", "mail", "telephone_number", "school", "region",
	"note", "iban", "vs", "period", "period_raw", "amount_cents",
	"type_of_payment", "imported_at", "created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Surname, &s.Mail, &s.TelephoneNumber, &s.School,
		&s.Region, &s.Note, &s.IBAN, &s.VS, &s.Period, &s.PeriodRaw,
		&s.Amount, &s.TypeOfPayment, &s.ImportedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateStudent inserts a new student record and returns its generated id
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (string, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("students").
		Columns("name", "surname", "mail", "telephone_number", "school", "region",
			"note", "iban", "vs", "period", "period_raw", "amount_cents",
			"type_of_payment", "imported_at", "created_at", "updated_at").
		Values(student.Name, student.Surname, student.Mail, student.TelephoneNumber,
			student.School, student.Region, student.Note, student.IBAN, student.VS,
			student.Period, student.PeriodRaw, student.Amount,
			student.TypeOfPayment, student.ImportedAt, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build create student query: %w", err)
	}

	var id string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return "", fmt.Errorf("error creating student: %w", err)
	}
	return id, nil
}

// BulkInsertStudents inserts students in chunked batches. It returns the
// number of rows written; rows already written stay in place if a later
// chunk fails.
func (r *StudentRepository) BulkInsertStudents(ctx context.Context, students []*models.Student) (int, error) {
	written := 0
	now := time.Now()

	for start := 0; start < len(students); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(students) {
			end = len(students)
		}

		batch := &pgx.Batch{}
		for _, s := range students[start:end] {
			sql, args, err := r.sb.Insert("students").
				Columns("name", "surname", "mail", "telephone_number", "school", "region",
					"note", "iban", "vs", "period", "period_raw", "amount_cents",
					"type_of_payment", "imported_at", "created_at", "updated_at").
				Values(s.Name, s.Surname, s.Mail, s.TelephoneNumber, s.School, s.Region,
					s.Note, s.IBAN, s.VS, s.Period, s.PeriodRaw, s.Amount,
					s.TypeOfPayment, s.ImportedAt, now, now).
				ToSql()
			if err != nil {
				return written, fmt.Errorf("failed to build bulk insert query: %w", err)
			}
			batch.Queue(sql, args...)
		}

		br := r.db.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			logger.Error().Err(err).Int("chunkStart", start).Msg("Error executing student insert batch")
			return written, fmt.Errorf("error inserting student batch: %w", err)
		}
		written += end - start
	}

	return written, nil
}

// GetStudentByID retrieves a student by id
func (r *StudentRepository) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by id: %w", err)
	}
	return student, nil
}

// GetStudentByMail retrieves the first student whose contact email matches,
// case-insensitively. Used for the self-service profile of signed-in members.
func (r *StudentRepository) GetStudentByMail(ctx context.Context, mail string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where("LOWER(mail) = LOWER(?)", mail).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student by mail query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by mail: %w", err)
	}
	return student, nil
}

// GetAllStudents retrieves all students, optionally filtered by normalized
// region code, ordered by surname
func (r *StudentRepository) GetAllStudents(ctx context.Context, region *string) ([]*models.Student, error) {
	query := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("surname ASC", "name ASC")
	if region != nil {
		query = query.Where(squirrel.Eq{"region": *region})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// UpdateStudent updates a student record
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("name", student.Name).
		Set("surname", student.Surname).
		Set("mail", student.Mail).
		Set("telephone_number", student.TelephoneNumber).
		Set("school", student.School).
		Set("region", student.Region).
		Set("note", student.Note).
		Set("iban", student.IBAN).
		Set("vs", student.VS).
		Set("period", student.Period).
		Set("period_raw", student.PeriodRaw).
		Set("amount_cents", student.Amount).
		Set("type_of_payment", student.TypeOfPayment).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateStudentAmount overrides a student's base amount
func (r *StudentRepository) UpdateStudentAmount(ctx context.Context, id string, amount models.Cents) error {
	sql, args, err := r.sb.Update("students").
		Set("amount_cents", amount).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student amount query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", id).Msg("Error executing update student amount query")
		return fmt.Errorf("error updating student amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// DeleteStudent removes a student and clears the match fields of every
// payment referencing it, within a single transaction.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete student transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	unmatchSQL, unmatchArgs, err := r.sb.Update("payments").
		Set("matched_student_id", nil).
		Set("match_status", models.MatchStatusUnmatched).
		Where(squirrel.Eq{"matched_student_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build unmatch payments query: %w", err)
	}
	if _, err := tx.Exec(ctx, unmatchSQL, unmatchArgs...); err != nil {
		logger.Error().Err(err).Str("studentID", id).Msg("Error clearing payment matches for deleted student")
		return fmt.Errorf("error clearing payment matches: %w", err)
	}

	deleteSQL, deleteArgs, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}
	tag, err := tx.Exec(ctx, deleteSQL, deleteArgs...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete student transaction: %w", err)
	}
	return nil
}
