package integration

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/admin-api/internal/database"
	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
	"github.com/campusconnect/admin-api/pkg/auth"
)

// SeedStudent inserts a student with the given moderation flags
func SeedStudent(ctx context.Context, db *database.DB, email, name string, hasRequestedMod, isMod, isBanned bool) (*models.Student, error) {
	motivation := ""
	if hasRequestedMod {
		motivation = "I want to help moderate the community"
	}

	student, err := repositories.NewStudentRepository(db).Create(ctx, &models.Student{
		Name:             name,
		Email:            email,
		University:       "Test University",
		RollNumber:       "CS-2021-001",
		Session:          "2021-2025",
		HasRequestedMod:  hasRequestedMod,
		MotivationForMod: motivation,
		IsMod:            isMod,
		IsBanned:         isBanned,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert student: %w", err)
	}

	return student, nil
}

// SeedUniversity inserts a university with the given status
func SeedUniversity(ctx context.Context, pool *pgxpool.Pool, regNumber, name, email string, status models.UniversityStatus) (*models.University, error) {
	query := `
		INSERT INTO universities (id, reg_number, name, location, estd, email, type, status, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, 'Test City', 1985, $3, 'public', $4, NOW(), NOW())
		RETURNING id, reg_number, name, logo, cover_image, location, bio, website, estd, email, type, total_students, requested_by, status, created_at, updated_at
	`

	var university models.University
	var statusStr string
	err := pool.QueryRow(ctx, query, regNumber, name, email, string(status)).Scan(
		&university.ID,
		&university.RegNumber,
		&university.Name,
		&university.Logo,
		&university.CoverImage,
		&university.Location,
		&university.Bio,
		&university.Website,
		&university.Estd,
		&university.Email,
		&university.Type,
		&university.TotalStudents,
		&university.RequestedBy,
		&statusStr,
		&university.CreatedAt,
		&university.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert university: %w", err)
	}
	university.Status = models.UniversityStatus(statusStr)

	return &university, nil
}

// SeedAdmin inserts an admin with a hashed password
func SeedAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) (*models.Admin, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO admins (id, email, password_hash, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		RETURNING id, email, password_hash, created_at, updated_at
	`

	var admin models.Admin
	err = pool.QueryRow(ctx, query, email, hash).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert admin: %w", err)
	}

	return &admin, nil
}
