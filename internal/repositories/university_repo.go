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

const universityColumns = `id, reg_number, name, logo, cover_image, location, bio, website,
	estd, email, type, total_students, requested_by, status, created_at, updated_at`

type UniversityRepository struct {
	pool *pgxpool.Pool
}

func NewUniversityRepository(db *database.DB) *UniversityRepository {
	return &UniversityRepository{pool: db.Pool}
}

func scanUniversityRow(scanner rowScanner) (*models.University, error) {
	var u models.University
	var status string

	err := scanner.Scan(
		&u.ID, &u.RegNumber, &u.Name, &u.Logo, &u.CoverImage, &u.Location, &u.Bio, &u.Website,
		&u.Estd, &u.Email, &u.Type, &u.TotalStudents, &u.RequestedBy, &status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	u.Status = models.UniversityStatus(status)
	return &u, nil
}

func scanUniversityRows(rows pgx.Rows) ([]*models.University, error) {
	defer rows.Close()

	universities := make([]*models.University, 0)

	for rows.Next() {
		university, err := scanUniversityRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan university: %w", err)
		}
		universities = append(universities, university)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return universities, nil
}

// UniversityFilter narrows List and Count results. An empty Status means
// all statuses; Search matches name, location and email.
type UniversityFilter struct {
	Status models.UniversityStatus
	Search string
}

func (f UniversityFilter) filterClause(startArg int) (string, []interface{}) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)

	if f.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", startArg+len(args)))
		args = append(args, string(f.Status))
	}

	if f.Search != "" {
		p := fmt.Sprintf("$%d", startArg+len(args))
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE '%%' || %s || '%%' OR location ILIKE '%%' || %s || '%%' OR email ILIKE '%%' || %s || '%%')",
			p, p, p,
		))
		args = append(args, f.Search)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *UniversityRepository) GetByRegNumber(ctx context.Context, regNumber string) (*models.University, error) {
	query := fmt.Sprintf(`SELECT %s FROM universities WHERE reg_number = $1`, universityColumns)

	return scanUniversityRow(r.pool.QueryRow(ctx, query, regNumber))
}

func (r *UniversityRepository) List(ctx context.Context, filter UniversityFilter, limit, offset int) ([]*models.University, error) {
	where, args := filter.filterClause(1)

	query := fmt.Sprintf(
		`SELECT %s FROM universities%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		universityColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query universities: %w", err)
	}

	return scanUniversityRows(rows)
}

func (r *UniversityRepository) Count(ctx context.Context, filter UniversityFilter) (int64, error) {
	where, args := filter.filterClause(1)

	var count int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM universities"+where, args...).Scan(&count)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}

	return count, nil
}

func (r *UniversityRepository) Create(ctx context.Context, university *models.University) (*models.University, error) {
	university.ID = uuid.New().String()

	now := time.Now()
	university.CreatedAt = now
	university.UpdatedAt = now

	if university.Status == "" {
		university.Status = models.UniStatusPending
	}

	query := fmt.Sprintf(`
		INSERT INTO universities (id, reg_number, name, logo, cover_image, location, bio, website,
			estd, email, type, total_students, requested_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING %s
	`, universityColumns)

	return scanUniversityRow(r.pool.QueryRow(ctx, query,
		university.ID, university.RegNumber, university.Name, university.Logo, university.CoverImage,
		university.Location, university.Bio, university.Website,
		university.Estd, university.Email, university.Type, university.TotalStudents,
		university.RequestedBy, string(university.Status), university.CreatedAt, university.UpdatedAt,
	))
}

// Update writes all mutable descriptive fields plus status. The record
// stays keyed by reg_number; callers merge partial input beforehand.
func (r *UniversityRepository) Update(ctx context.Context, regNumber string, university *models.University) (*models.University, error) {
	university.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE universities
		SET name = $1, logo = $2, cover_image = $3, location = $4, bio = $5, website = $6,
			estd = $7, email = $8, type = $9, total_students = $10, status = $11, updated_at = $12
		WHERE reg_number = $13
		RETURNING %s
	`, universityColumns)

	return scanUniversityRow(r.pool.QueryRow(ctx, query,
		university.Name, university.Logo, university.CoverImage, university.Location,
		university.Bio, university.Website, university.Estd, university.Email,
		university.Type, university.TotalStudents, string(university.Status),
		university.UpdatedAt, regNumber,
	))
}

func (r *UniversityRepository) Delete(ctx context.Context, regNumber string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM universities WHERE reg_number = $1`, regNumber)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *UniversityRepository) SetStatus(ctx context.Context, regNumber string, status models.UniversityStatus) (*models.University, error) {
	query := fmt.Sprintf(`
		UPDATE universities SET status = $1, updated_at = NOW()
		WHERE reg_number = $2
		RETURNING %s
	`, universityColumns)

	return scanUniversityRow(r.pool.QueryRow(ctx, query, string(status), regNumber))
}

// ToggleBlock atomically flips approved <-> blocked. The status guard keeps
// the toggle from touching records in any other state; the query matches no
// rows for those, and callers distinguish not-found from invalid state.
func (r *UniversityRepository) ToggleBlock(ctx context.Context, regNumber string) (*models.University, error) {
	query := fmt.Sprintf(`
		UPDATE universities
		SET status = CASE status WHEN 'approved' THEN 'blocked' ELSE 'approved' END,
			updated_at = NOW()
		WHERE reg_number = $1 AND status IN ('approved', 'blocked')
		RETURNING %s
	`, universityColumns)

	return scanUniversityRow(r.pool.QueryRow(ctx, query, regNumber))
}

// EmailInUseByOther reports whether another registration already uses the email.
func (r *UniversityRepository) EmailInUseByOther(ctx context.Context, email, regNumber string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM universities WHERE LOWER(email) = LOWER($1) AND reg_number <> $2)`,
		email, regNumber,
	).Scan(&exists)
	if err != nil {
		return false, database.MapPostgresError(err)
	}

	return exists, nil
}
