package repositories

import (
	"context"
	"time"

	"github.com/campusconnect/admin-api/internal/database"
	"github.com/campusconnect/admin-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(db *database.DB) *AdminRepository {
	return &AdminRepository{pool: db.Pool}
}

func scanAdminRow(scanner rowScanner) (*models.Admin, error) {
	var a models.Admin

	err := scanner.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &a, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at FROM admins WHERE id = $1`

	return scanAdminRow(r.pool.QueryRow(ctx, query, id))
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at FROM admins WHERE email = $1`

	return scanAdminRow(r.pool.QueryRow(ctx, query, email))
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	admin.ID = uuid.New().String()

	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	query := `
		INSERT INTO admins (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, created_at, updated_at
	`

	return scanAdminRow(r.pool.QueryRow(ctx, query,
		admin.ID, admin.Email, admin.PasswordHash, admin.CreatedAt, admin.UpdatedAt,
	))
}
