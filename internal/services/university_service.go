package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
)

// UniversityRepository defines the interface for university data access
type UniversityRepository interface {
	GetByRegNumber(ctx context.Context, regNumber string) (*models.University, error)
	List(ctx context.Context, filter repositories.UniversityFilter, limit, offset int) ([]*models.University, error)
	Count(ctx context.Context, filter repositories.UniversityFilter) (int64, error)
	Create(ctx context.Context, university *models.University) (*models.University, error)
	Update(ctx context.Context, regNumber string, university *models.University) (*models.University, error)
	Delete(ctx context.Context, regNumber string) error
	SetStatus(ctx context.Context, regNumber string, status models.UniversityStatus) (*models.University, error)
	ToggleBlock(ctx context.Context, regNumber string) (*models.University, error)
	EmailInUseByOther(ctx context.Context, email, regNumber string) (bool, error)
}

// UniversityUpdate carries a partial update. Nil fields are left as-is.
type UniversityUpdate struct {
	RegNumber     *string
	Name          *string
	Logo          *string
	CoverImage    *string
	Location      *string
	Bio           *string
	Website       *string
	Estd          *int
	Email         *string
	Type          *string
	TotalStudents *int
}

// UniversityService manages the university registry and its status lifecycle.
type UniversityService struct {
	repo   UniversityRepository
	logger *slog.Logger
}

// NewUniversityService creates a new UniversityService
func NewUniversityService(repo UniversityRepository, logger *slog.Logger) *UniversityService {
	return &UniversityService{
		repo:   repo,
		logger: logger,
	}
}

// CreateUniversity registers a university. Admin-created entries are live
// immediately; everything else enters the registry as a pending request.
func (s *UniversityService) CreateUniversity(ctx context.Context, university *models.University, approved bool) (*models.University, error) {
	university.RegNumber = strings.TrimSpace(university.RegNumber)
	university.Email = strings.TrimSpace(strings.ToLower(university.Email))

	if approved {
		university.Status = models.UniStatusApproved
	} else {
		university.Status = models.UniStatusPending
	}

	if university.Email != "" {
		inUse, err := s.repo.EmailInUseByOther(ctx, university.Email, university.RegNumber)
		if err != nil {
			s.logger.Error("failed to check email uniqueness", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		if inUse {
			return nil, models.ErrEmailInUse
		}
	}

	created, err := s.repo.Create(ctx, university)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			s.logger.Info("university already registered", slog.String("reg_number", university.RegNumber))
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create university", slog.String("reg_number", university.RegNumber), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("university registered",
		slog.String("reg_number", created.RegNumber),
		slog.String("status", string(created.Status)),
	)
	return created, nil
}

// GetUniversity retrieves a university by registration number
func (s *UniversityService) GetUniversity(ctx context.Context, regNumber string) (*models.University, error) {
	university, err := s.repo.GetByRegNumber(ctx, regNumber)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get university", slog.String("reg_number", regNumber), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return university, nil
}

// ListUniversities returns one page of universities matching the filter,
// newest first, together with the total match count.
func (s *UniversityService) ListUniversities(ctx context.Context, filter repositories.UniversityFilter, limit, offset int) ([]*models.University, int64, error) {
	universities, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list universities", slog.Any("error", err))
		return nil, 0, models.ErrInternalServer
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count universities", slog.Any("error", err))
		return nil, 0, models.ErrInternalServer
	}

	return universities, total, nil
}

// ListRequests returns pending registration requests, newest first.
func (s *UniversityService) ListRequests(ctx context.Context, limit, offset int) ([]*models.University, int64, error) {
	filter := repositories.UniversityFilter{Status: models.UniStatusPending}
	return s.ListUniversities(ctx, filter, limit, offset)
}

// UpdateUniversity applies a partial update keyed by registration number.
// The registration number itself is immutable. A university that was in
// the updating state comes out approved.
func (s *UniversityService) UpdateUniversity(ctx context.Context, regNumber string, update *UniversityUpdate) (*models.University, error) {
	if update.RegNumber != nil && *update.RegNumber != regNumber {
		s.logger.Info("rejected registration number change",
			slog.String("reg_number", regNumber),
			slog.String("attempted", *update.RegNumber),
		)
		return nil, models.ErrImmutableField
	}

	existing, err := s.repo.GetByRegNumber(ctx, regNumber)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get university", slog.String("reg_number", regNumber), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if update.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*update.Email))
		if email != "" && email != existing.Email {
			inUse, err := s.repo.EmailInUseByOther(ctx, email, regNumber)
			if err != nil {
				s.logger.Error("failed to check email uniqueness", slog.Any("error", err))
				return nil, models.ErrInternalServer
			}
			if inUse {
				return nil, models.ErrEmailInUse
			}
		}
		existing.Email = email
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.Logo != nil {
		existing.Logo = *update.Logo
	}
	if update.CoverImage != nil {
		existing.CoverImage = *update.CoverImage
	}
	if update.Location != nil {
		existing.Location = *update.Location
	}
	if update.Bio != nil {
		existing.Bio = *update.Bio
	}
	if update.Website != nil {
		existing.Website = *update.Website
	}
	if update.Estd != nil {
		existing.Estd = *update.Estd
	}
	if update.Type != nil {
		existing.Type = *update.Type
	}
	if update.TotalStudents != nil {
		existing.TotalStudents = *update.TotalStudents
	}

	if existing.Status == models.UniStatusUpdating {
		existing.Status = models.UniStatusApproved
	}

	updated, err := s.repo.Update(ctx, regNumber, existing)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to update university", slog.String("reg_number", regNumber), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("university updated", slog.String("reg_number", regNumber))
	return updated, nil
}

// DeleteUniversity permanently removes a university by registration number
func (s *UniversityService) DeleteUniversity(ctx context.Context, regNumber string) error {
	if err := s.repo.Delete(ctx, regNumber); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete university", slog.String("reg_number", regNumber), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("university deleted", slog.String("reg_number", regNumber))
	return nil
}

// DecideRequest resolves a pending registration request to approved or
// rejected. Any other transition through this path is refused.
func (s *UniversityService) DecideRequest(ctx context.Context, regNumber string, status models.UniversityStatus) (*models.University, error) {
	if status != models.UniStatusApproved && status != models.UniStatusRejected {
		return nil, models.ErrInvalidStatus
	}

	existing, err := s.repo.GetByRegNumber(ctx, regNumber)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get university", slog.String("reg_number", regNumber), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if existing.Status != models.UniStatusPending {
		s.logger.Info("decision refused: request not pending",
			slog.String("reg_number", regNumber),
			slog.String("status", string(existing.Status)),
		)
		return nil, models.ErrInvalidStatus
	}

	updated, err := s.repo.SetStatus(ctx, regNumber, status)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to set university status", slog.String("reg_number", regNumber), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("registration request decided",
		slog.String("reg_number", regNumber),
		slog.String("status", string(status)),
	)
	return updated, nil
}

// ToggleBlock swaps a university between approved and blocked. Universities
// in any other state cannot be blocked or unblocked.
func (s *UniversityService) ToggleBlock(ctx context.Context, regNumber string) (*models.University, error) {
	university, err := s.repo.ToggleBlock(ctx, regNumber)
	if err == nil {
		s.logger.Info("block status changed",
			slog.String("reg_number", regNumber),
			slog.String("status", string(university.Status)),
		)
		return university, nil
	}

	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to toggle block", slog.String("reg_number", regNumber), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// Distinguish a missing record from one in a non-toggleable state.
	existing, getErr := s.repo.GetByRegNumber(ctx, regNumber)
	if getErr != nil {
		if errors.Is(getErr, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get university", slog.String("reg_number", regNumber), slog.Any("error", getErr))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("block toggle refused",
		slog.String("reg_number", regNumber),
		slog.String("status", string(existing.Status)),
	)
	return nil, models.ErrInvalidStatus
}
