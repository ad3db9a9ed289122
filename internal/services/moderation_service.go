package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
)

// StudentRepository defines the interface for student data access
type StudentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context, filter repositories.StudentFilter, limit, offset int) ([]*models.Student, error)
	Count(ctx context.Context, filter repositories.StudentFilter) (int64, error)
	GrantMod(ctx context.Context, id string) (*models.Student, error)
	ClearModRequest(ctx context.Context, id string) (*models.Student, error)
	RevokeMod(ctx context.Context, id string) (*models.Student, error)
	ToggleBan(ctx context.Context, id string) (*models.Student, error)
}

// BanNotifier receives ban status changes after they are committed.
// Implementations must never block and must never return the failure to
// the caller; the transition has already happened.
type BanNotifier interface {
	NotifyBanChange(email, name string, banned bool)
}

// ModerationService applies the moderation state machine to student accounts.
type ModerationService struct {
	repo     StudentRepository
	notifier BanNotifier
	logger   *slog.Logger
}

// NewModerationService creates a new ModerationService
func NewModerationService(repo StudentRepository, notifier BanNotifier, logger *slog.Logger) *ModerationService {
	return &ModerationService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// GetStudent retrieves a student by ID
func (s *ModerationService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("student not found", slog.String("student_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get student", slog.String("student_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return student, nil
}

// ListStudents returns one page of students matching the filter, newest
// first, together with the total match count.
func (s *ModerationService) ListStudents(ctx context.Context, filter repositories.StudentFilter, limit, offset int) ([]*models.Student, int64, error) {
	students, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list students", slog.Any("error", err))
		return nil, 0, models.ErrInternalServer
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count students", slog.Any("error", err))
		return nil, 0, models.ErrInternalServer
	}

	return students, total, nil
}

// ApproveMod grants moderator status and clears any pending request.
// Safe to retry: approving an existing moderator is a no-op.
func (s *ModerationService) ApproveMod(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.GrantMod(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("student not found", slog.String("student_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to approve moderator", slog.String("student_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("moderator request approved", slog.String("student_id", id))
	return student, nil
}

// RejectMod clears a pending moderator request without touching moderator
// status. Rejecting a student with no pending request is an invalid state,
// so a blind retry after success fails; callers must re-check first.
func (s *ModerationService) RejectMod(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.ClearModRequest(ctx, id)
	if err == nil {
		s.logger.Info("moderator request rejected", slog.String("student_id", id))
		return student, nil
	}

	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to reject moderator request", slog.String("student_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// The guarded update matched nothing: either the student is gone or
	// there was no pending request. One read tells them apart.
	if _, getErr := s.repo.GetByID(ctx, id); getErr != nil {
		if errors.Is(getErr, models.ErrNotFound) {
			s.logger.Info("student not found", slog.String("student_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get student", slog.String("student_id", id), slog.Any("error", getErr))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("reject refused: no pending moderator request", slog.String("student_id", id))
	return nil, models.ErrNoPendingRequest
}

// RevokeMod removes moderator status and clears any pending request.
// Safe to retry: revoking a non-moderator is a no-op.
func (s *ModerationService) RevokeMod(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.RevokeMod(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("student not found", slog.String("student_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to revoke moderator", slog.String("student_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("moderator status revoked", slog.String("student_id", id))
	return student, nil
}

// ToggleBan flips the ban flag and hands the result to the notifier.
// The notification is fire-and-forget: by the time it runs, the ban is
// already committed, so its failure never surfaces here.
func (s *ModerationService) ToggleBan(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.ToggleBan(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("student not found", slog.String("student_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to toggle ban", slog.String("student_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("ban status changed",
		slog.String("student_id", id),
		slog.Bool("is_banned", student.IsBanned),
	)

	if s.notifier != nil && student.Email != "" {
		s.notifier.NotifyBanChange(student.Email, student.Name, student.IsBanned)
	}

	return student, nil
}
