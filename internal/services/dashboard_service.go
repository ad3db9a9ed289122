package services

import (
	"context"
	"log/slog"

	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
)

// DashboardStats summarizes the platform for the admin home screen.
type DashboardStats struct {
	TotalStudents      int64 `json:"total_students"`
	Moderators         int64 `json:"moderators"`
	PendingModRequests int64 `json:"pending_mod_requests"`
	BannedStudents     int64 `json:"banned_students"`
	TotalUniversities  int64 `json:"total_universities"`
	PendingUniRequests int64 `json:"pending_uni_requests"`
}

// DashboardService aggregates counts across the student and university stores.
type DashboardService struct {
	students     StudentRepository
	universities UniversityRepository
	logger       *slog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(students StudentRepository, universities UniversityRepository, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		students:     students,
		universities: universities,
		logger:       logger,
	}
}

// GetStats collects the dashboard counters. Counts are read one after
// another, so they may straddle concurrent writes; the dashboard only
// needs a rough snapshot.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	studentCounts := []struct {
		bucket models.ModerationBucket
		dest   *int64
	}{
		{models.BucketAll, &stats.TotalStudents},
		{models.BucketApproved, &stats.Moderators},
		{models.BucketPending, &stats.PendingModRequests},
		{models.BucketBanned, &stats.BannedStudents},
	}
	for _, c := range studentCounts {
		n, err := s.students.Count(ctx, repositories.StudentFilter{Bucket: c.bucket})
		if err != nil {
			s.logger.Error("failed to count students",
				slog.String("bucket", string(c.bucket)),
				slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		*c.dest = n
	}

	total, err := s.universities.Count(ctx, repositories.UniversityFilter{})
	if err != nil {
		s.logger.Error("failed to count universities", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	stats.TotalUniversities = total

	pending, err := s.universities.Count(ctx, repositories.UniversityFilter{Status: models.UniStatusPending})
	if err != nil {
		s.logger.Error("failed to count pending university requests", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	stats.PendingUniRequests = pending

	return stats, nil
}
