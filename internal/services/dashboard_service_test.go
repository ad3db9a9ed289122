package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GetStats_Success(t *testing.T) {
	studentCounts := map[models.ModerationBucket]int64{
		models.BucketAll:      120,
		models.BucketApproved: 8,
		models.BucketPending:  5,
		models.BucketBanned:   3,
	}

	mockStudents := &MockStudentRepository{
		CountFunc: func(ctx context.Context, filter repositories.StudentFilter) (int64, error) {
			return studentCounts[filter.Bucket], nil
		},
	}
	mockUniversities := &MockUniversityRepository{
		CountFunc: func(ctx context.Context, filter repositories.UniversityFilter) (int64, error) {
			if filter.Status == models.UniStatusPending {
				return 2, nil
			}
			return 15, nil
		},
	}

	svc := NewDashboardService(mockStudents, mockUniversities, slog.Default())

	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(120), stats.TotalStudents)
	assert.Equal(t, int64(8), stats.Moderators)
	assert.Equal(t, int64(5), stats.PendingModRequests)
	assert.Equal(t, int64(3), stats.BannedStudents)
	assert.Equal(t, int64(15), stats.TotalUniversities)
	assert.Equal(t, int64(2), stats.PendingUniRequests)
}

func TestDashboardService_GetStats_StudentCountError(t *testing.T) {
	mockStudents := &MockStudentRepository{
		CountFunc: func(ctx context.Context, filter repositories.StudentFilter) (int64, error) {
			return 0, models.ErrInternalServer
		},
	}

	svc := NewDashboardService(mockStudents, &MockUniversityRepository{}, slog.Default())

	stats, err := svc.GetStats(context.Background())

	assert.Error(t, err)
	assert.Nil(t, stats)
	assert.Equal(t, models.ErrInternalServer, err)
}

func TestDashboardService_GetStats_UniversityCountError(t *testing.T) {
	mockStudents := &MockStudentRepository{
		CountFunc: func(ctx context.Context, filter repositories.StudentFilter) (int64, error) {
			return 1, nil
		},
	}
	mockUniversities := &MockUniversityRepository{
		CountFunc: func(ctx context.Context, filter repositories.UniversityFilter) (int64, error) {
			return 0, models.ErrInternalServer
		},
	}

	svc := NewDashboardService(mockStudents, mockUniversities, slog.Default())

	stats, err := svc.GetStats(context.Background())

	assert.Error(t, err)
	assert.Nil(t, stats)
	assert.Equal(t, models.ErrInternalServer, err)
}
