package services

import (
	"context"
	"time"

	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
	"github.com/google/uuid"
)

// MockStudentRepository implements StudentRepository for testing
type MockStudentRepository struct {
	GetByIDFunc         func(ctx context.Context, id string) (*models.Student, error)
	ListFunc            func(ctx context.Context, filter repositories.StudentFilter, limit, offset int) ([]*models.Student, error)
	CountFunc           func(ctx context.Context, filter repositories.StudentFilter) (int64, error)
	GrantModFunc        func(ctx context.Context, id string) (*models.Student, error)
	ClearModRequestFunc func(ctx context.Context, id string) (*models.Student, error)
	RevokeModFunc       func(ctx context.Context, id string) (*models.Student, error)
	ToggleBanFunc       func(ctx context.Context, id string) (*models.Student, error)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockStudentRepository) List(ctx context.Context, filter repositories.StudentFilter, limit, offset int) ([]*models.Student, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, limit, offset)
	}
	return []*models.Student{}, nil
}

func (m *MockStudentRepository) Count(ctx context.Context, filter repositories.StudentFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	return 0, nil
}

func (m *MockStudentRepository) GrantMod(ctx context.Context, id string) (*models.Student, error) {
	if m.GrantModFunc != nil {
		return m.GrantModFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockStudentRepository) ClearModRequest(ctx context.Context, id string) (*models.Student, error) {
	if m.ClearModRequestFunc != nil {
		return m.ClearModRequestFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockStudentRepository) RevokeMod(ctx context.Context, id string) (*models.Student, error) {
	if m.RevokeModFunc != nil {
		return m.RevokeModFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockStudentRepository) ToggleBan(ctx context.Context, id string) (*models.Student, error) {
	if m.ToggleBanFunc != nil {
		return m.ToggleBanFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

// MockUniversityRepository implements UniversityRepository for testing
type MockUniversityRepository struct {
	GetByRegNumberFunc    func(ctx context.Context, regNumber string) (*models.University, error)
	ListFunc              func(ctx context.Context, filter repositories.UniversityFilter, limit, offset int) ([]*models.University, error)
	CountFunc             func(ctx context.Context, filter repositories.UniversityFilter) (int64, error)
	CreateFunc            func(ctx context.Context, university *models.University) (*models.University, error)
	UpdateFunc            func(ctx context.Context, regNumber string, university *models.University) (*models.University, error)
	DeleteFunc            func(ctx context.Context, regNumber string) error
	SetStatusFunc         func(ctx context.Context, regNumber string, status models.UniversityStatus) (*models.University, error)
	ToggleBlockFunc       func(ctx context.Context, regNumber string) (*models.University, error)
	EmailInUseByOtherFunc func(ctx context.Context, email, regNumber string) (bool, error)
}

func (m *MockUniversityRepository) GetByRegNumber(ctx context.Context, regNumber string) (*models.University, error) {
	if m.GetByRegNumberFunc != nil {
		return m.GetByRegNumberFunc(ctx, regNumber)
	}
	return nil, models.ErrNotFound
}

func (m *MockUniversityRepository) List(ctx context.Context, filter repositories.UniversityFilter, limit, offset int) ([]*models.University, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, limit, offset)
	}
	return []*models.University{}, nil
}

func (m *MockUniversityRepository) Count(ctx context.Context, filter repositories.UniversityFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	return 0, nil
}

func (m *MockUniversityRepository) Create(ctx context.Context, university *models.University) (*models.University, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, university)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUniversityRepository) Update(ctx context.Context, regNumber string, university *models.University) (*models.University, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, regNumber, university)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUniversityRepository) Delete(ctx context.Context, regNumber string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, regNumber)
	}
	return nil
}

func (m *MockUniversityRepository) SetStatus(ctx context.Context, regNumber string, status models.UniversityStatus) (*models.University, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, regNumber, status)
	}
	return nil, models.ErrNotFound
}

func (m *MockUniversityRepository) ToggleBlock(ctx context.Context, regNumber string) (*models.University, error) {
	if m.ToggleBlockFunc != nil {
		return m.ToggleBlockFunc(ctx, regNumber)
	}
	return nil, models.ErrNotFound
}

func (m *MockUniversityRepository) EmailInUseByOther(ctx context.Context, email, regNumber string) (bool, error) {
	if m.EmailInUseByOtherFunc != nil {
		return m.EmailInUseByOtherFunc(ctx, email, regNumber)
	}
	return false, nil
}

// MockAdminRepository implements AdminRepository for testing
type MockAdminRepository struct {
	GetByIDFunc    func(ctx context.Context, id string) (*models.Admin, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.Admin, error)
	CreateFunc     func(ctx context.Context, admin *models.Admin) (*models.Admin, error)
}

func (m *MockAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, admin)
	}
	admin.ID = uuid.New().String()
	return admin, nil
}

// MockEmailService implements EmailService for testing
type MockEmailService struct {
	SendBanStatusEmailFunc func(ctx context.Context, email, name string, banned bool) error
}

func (m *MockEmailService) SendBanStatusEmail(ctx context.Context, email, name string, banned bool) error {
	if m.SendBanStatusEmailFunc != nil {
		return m.SendBanStatusEmailFunc(ctx, email, name, banned)
	}
	return nil
}

// MockBanNotifier records ban change notifications for testing
type MockBanNotifier struct {
	Calls []BanNotification
}

// BanNotification captures one NotifyBanChange call
type BanNotification struct {
	Email  string
	Name   string
	Banned bool
}

func (m *MockBanNotifier) NotifyBanChange(email, name string, banned bool) {
	m.Calls = append(m.Calls, BanNotification{Email: email, Name: name, Banned: banned})
}

// NewTestStudent creates a student with sensible defaults for testing
func NewTestStudent(id, email, name string) *models.Student {
	now := time.Now().UTC()
	return &models.Student{
		ID:         id,
		Name:       name,
		Email:      email,
		University: "Test University",
		RollNumber: "CS-2021-001",
		Session:    "2021-2025",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewTestUniversity creates a university with sensible defaults for testing
func NewTestUniversity(regNumber, name string, status models.UniversityStatus) *models.University {
	now := time.Now().UTC()
	return &models.University{
		ID:        uuid.New().String(),
		RegNumber: regNumber,
		Name:      name,
		Location:  "Test City",
		Estd:      1985,
		Email:     "admin@testuniversity.edu",
		Type:      "public",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
