package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campusconnect/admin-api/internal/database"
	"github.com/campusconnect/admin-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentColumns = `id, name, email, university, profile_photo, roll_number, session, bio,
	is_banned, is_mod, has_requested_mod, motivation_for_mod, created_at, updated_at`

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(db *database.DB) *StudentRepository {
	return &StudentRepository{pool: db.Pool}
}

// rowScanner interface for scanning rows (supports both single row and multiple rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStudentRow(scanner rowScanner) (*models.Student, error) {
	var s models.Student

	err := scanner.Scan(
		&s.ID, &s.Name, &s.Email, &s.University, &s.ProfilePhoto,
		&s.RollNumber, &s.Session, &s.Bio,
		&s.IsBanned, &s.IsMod, &s.HasRequestedMod, &s.MotivationForMod,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &s, nil
}

func scanStudentRows(rows pgx.Rows) ([]*models.Student, error) {
	defer rows.Close()

	students := make([]*models.Student, 0)

	for rows.Next() {
		student, err := scanStudentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return students, nil
}

// StudentFilter narrows List and Count results. Bucket derives from the
// moderation flags; Search matches name, email and university.
type StudentFilter struct {
	Bucket models.ModerationBucket
	Search string
}

// filterClause builds the WHERE clause for a filter. Argument numbering
// starts at startArg so callers can append pagination arguments after.
func (f StudentFilter) filterClause(startArg int) (string, []interface{}) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 1)

	switch f.Bucket {
	case models.BucketPending:
		conditions = append(conditions, "has_requested_mod")
	case models.BucketApproved:
		conditions = append(conditions, "is_mod")
	case models.BucketBanned:
		conditions = append(conditions, "is_banned")
	}

	if f.Search != "" {
		p := fmt.Sprintf("$%d", startArg+len(args))
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE '%%' || %s || '%%' OR email ILIKE '%%' || %s || '%%' OR university ILIKE '%%' || %s || '%%')",
			p, p, p,
		))
		args = append(args, f.Search)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)

	return scanStudentRow(r.pool.QueryRow(ctx, query, id))
}

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE email = $1`, studentColumns)

	return scanStudentRow(r.pool.QueryRow(ctx, query, email))
}

func (r *StudentRepository) List(ctx context.Context, filter StudentFilter, limit, offset int) ([]*models.Student, error) {
	where, args := filter.filterClause(1)

	query := fmt.Sprintf(
		`SELECT %s FROM students%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		studentColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}

	return scanStudentRows(rows)
}

func (r *StudentRepository) Count(ctx context.Context, filter StudentFilter) (int64, error) {
	where, args := filter.filterClause(1)

	var count int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM students"+where, args...).Scan(&count)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}

	return count, nil
}

func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	student.ID = uuid.New().String()

	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO students (id, name, email, university, profile_photo, roll_number, session, bio,
			is_banned, is_mod, has_requested_mod, motivation_for_mod, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING %s
	`, studentColumns)

	return scanStudentRow(r.pool.QueryRow(ctx, query,
		student.ID, student.Name, student.Email, student.University, student.ProfilePhoto,
		student.RollNumber, student.Session, student.Bio,
		student.IsBanned, student.IsMod, student.HasRequestedMod, student.MotivationForMod,
		student.CreatedAt, student.UpdatedAt,
	))
}

// GrantMod marks the student as a moderator and clears any pending request.
func (r *StudentRepository) GrantMod(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`
		UPDATE students SET is_mod = TRUE, has_requested_mod = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, studentColumns)

	return scanStudentRow(r.pool.QueryRow(ctx, query, id))
}

// ClearModRequest clears a pending moderator request and its motivation.
// The has_requested_mod guard makes the precondition atomic: the query
// matches no rows when there is no pending request.
func (r *StudentRepository) ClearModRequest(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`
		UPDATE students SET has_requested_mod = FALSE, motivation_for_mod = '', updated_at = NOW()
		WHERE id = $1 AND has_requested_mod
		RETURNING %s
	`, studentColumns)

	return scanStudentRow(r.pool.QueryRow(ctx, query, id))
}

// RevokeMod removes moderator status and clears any pending request.
func (r *StudentRepository) RevokeMod(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`
		UPDATE students SET is_mod = FALSE, has_requested_mod = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, studentColumns)

	return scanStudentRow(r.pool.QueryRow(ctx, query, id))
}

// ToggleBan atomically negates the ban flag and returns the updated record.
func (r *StudentRepository) ToggleBan(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`
		UPDATE students SET is_banned = NOT is_banned, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, studentColumns)

	return scanStudentRow(r.pool.QueryRow(ctx, query, id))
}
