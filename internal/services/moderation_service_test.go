package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func TestModerationService_GetStudent_Success(t *testing.T) {
	student := NewTestStudent("student123", "student@example.com", "Test Student")

	mockRepo := &MockStudentRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return student, nil
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, err := svc.GetStudent(context.Background(), "student123")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "student123", result.ID)
	assert.Equal(t, "student@example.com", result.Email)
}

func TestModerationService_GetStudent_NotFound(t *testing.T) {
	mockRepo := &MockStudentRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return nil, models.ErrNotFound
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, err := svc.GetStudent(context.Background(), "nonexistent")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, models.ErrNotFound, err)
}

func TestModerationService_ListStudents_Success(t *testing.T) {
	students := []*models.Student{
		NewTestStudent("student1", "one@example.com", "Student One"),
		NewTestStudent("student2", "two@example.com", "Student Two"),
	}

	var gotFilter repositories.StudentFilter
	mockRepo := &MockStudentRepository{
		ListFunc: func(ctx context.Context, filter repositories.StudentFilter, limit, offset int) ([]*models.Student, error) {
			gotFilter = filter
			return students, nil
		},
		CountFunc: func(ctx context.Context, filter repositories.StudentFilter) (int64, error) {
			return 2, nil
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	filter := repositories.StudentFilter{Bucket: models.BucketPending, Search: "one"}
	result, total, err := svc.ListStudents(context.Background(), filter, 10, 0)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, models.BucketPending, gotFilter.Bucket)
	assert.Equal(t, "one", gotFilter.Search)
}

func TestModerationService_ListStudents_CountError(t *testing.T) {
	mockRepo := &MockStudentRepository{
		ListFunc: func(ctx context.Context, filter repositories.StudentFilter, limit, offset int) ([]*models.Student, error) {
			return []*models.Student{}, nil
		},
		CountFunc: func(ctx context.Context, filter repositories.StudentFilter) (int64, error) {
			return 0, models.ErrInternalServer
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, total, err := svc.ListStudents(context.Background(), repositories.StudentFilter{}, 10, 0)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, models.ErrInternalServer, err)
}

func TestModerationService_ApproveMod_SetsModAndClearsRequest(t *testing.T) {
	mockRepo := &MockStudentRepository{
		GrantModFunc: func(ctx context.Context, id string) (*models.Student, error) {
			student := NewTestStudent(id, "student@example.com", "Test Student")
			student.IsMod = true
			student.HasRequestedMod = false
			return student, nil
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, err := svc.ApproveMod(context.Background(), "student123")

	assert.NoError(t, err)
	assert.True(t, result.IsMod)
	assert.False(t, result.HasRequestedMod)
}

func TestModerationService_ApproveMod_NotFound(t *testing.T) {
	mockRepo := &MockStudentRepository{
		GrantModFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return nil, models.ErrNotFound
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, err := svc.ApproveMod(context.Background(), "nonexistent")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, models.ErrNotFound, err)
}

func TestModerationService_RejectMod_Success(t *testing.T) {
	mockRepo := &MockStudentRepository{
		ClearModRequestFunc: func(ctx context.Context, id string) (*models.Student, error) {
			student := NewTestStudent(id, "student@example.com", "Test Student")
			student.HasRequestedMod = false
			student.MotivationForMod = ""
			return student, nil
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, err := svc.RejectMod(context.Background(), "student123")

	assert.NoError(t, err)
	assert.False(t, result.HasRequestedMod)
	assert.Empty(t, result.MotivationForMod)
}

func TestModerationService_RejectMod_NoPendingRequest(t *testing.T) {
	// The guarded update misses, but the student exists.
	mockRepo := &MockStudentRepository{
		ClearModRequestFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return nil, models.ErrNotFound
		},
		GetByIDFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return NewTestStudent(id, "student@example.com", "Test Student"), nil
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, err := svc.RejectMod(context.Background(), "student123")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, models.ErrNoPendingRequest, err)
}

func TestModerationService_RejectMod_StudentGone(t *testing.T) {
	mockRepo := &MockStudentRepository{
		ClearModRequestFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return nil, models.ErrNotFound
		},
		GetByIDFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return nil, models.ErrNotFound
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, err := svc.RejectMod(context.Background(), "nonexistent")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, models.ErrNotFound, err)
}

func TestModerationService_RejectMod_DoesNotTouchModStatus(t *testing.T) {
	mockRepo := &MockStudentRepository{
		ClearModRequestFunc: func(ctx context.Context, id string) (*models.Student, error) {
			student := NewTestStudent(id, "student@example.com", "Test Student")
			student.IsMod = true
			student.HasRequestedMod = false
			return student, nil
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, err := svc.RejectMod(context.Background(), "student123")

	assert.NoError(t, err)
	assert.True(t, result.IsMod)
	assert.False(t, result.HasRequestedMod)
}

func TestModerationService_RevokeMod_Success(t *testing.T) {
	mockRepo := &MockStudentRepository{
		RevokeModFunc: func(ctx context.Context, id string) (*models.Student, error) {
			student := NewTestStudent(id, "student@example.com", "Test Student")
			student.IsMod = false
			student.HasRequestedMod = false
			return student, nil
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, err := svc.RevokeMod(context.Background(), "student123")

	assert.NoError(t, err)
	assert.False(t, result.IsMod)
	assert.False(t, result.HasRequestedMod)
}

func TestModerationService_ToggleBan_NotifiesOnBan(t *testing.T) {
	mockRepo := &MockStudentRepository{
		ToggleBanFunc: func(ctx context.Context, id string) (*models.Student, error) {
			student := NewTestStudent(id, "student@example.com", "Test Student")
			student.IsBanned = true
			return student, nil
		},
	}
	notifier := &MockBanNotifier{}

	svc := NewModerationService(mockRepo, notifier, slog.Default())

	result, err := svc.ToggleBan(context.Background(), "student123")

	assert.NoError(t, err)
	assert.True(t, result.IsBanned)
	assert.Len(t, notifier.Calls, 1)
	assert.Equal(t, "student@example.com", notifier.Calls[0].Email)
	assert.True(t, notifier.Calls[0].Banned)
}

func TestModerationService_ToggleBan_NotifiesOnUnban(t *testing.T) {
	mockRepo := &MockStudentRepository{
		ToggleBanFunc: func(ctx context.Context, id string) (*models.Student, error) {
			student := NewTestStudent(id, "student@example.com", "Test Student")
			student.IsBanned = false
			return student, nil
		},
	}
	notifier := &MockBanNotifier{}

	svc := NewModerationService(mockRepo, notifier, slog.Default())

	result, err := svc.ToggleBan(context.Background(), "student123")

	assert.NoError(t, err)
	assert.False(t, result.IsBanned)
	assert.Len(t, notifier.Calls, 1)
	assert.False(t, notifier.Calls[0].Banned)
}

func TestModerationService_ToggleBan_NotFound(t *testing.T) {
	mockRepo := &MockStudentRepository{
		ToggleBanFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return nil, models.ErrNotFound
		},
	}
	notifier := &MockBanNotifier{}

	svc := NewModerationService(mockRepo, notifier, slog.Default())

	result, err := svc.ToggleBan(context.Background(), "nonexistent")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, models.ErrNotFound, err)
	assert.Empty(t, notifier.Calls)
}

func TestModerationService_ToggleBan_NilNotifier(t *testing.T) {
	mockRepo := &MockStudentRepository{
		ToggleBanFunc: func(ctx context.Context, id string) (*models.Student, error) {
			student := NewTestStudent(id, "student@example.com", "Test Student")
			student.IsBanned = true
			return student, nil
		},
	}

	svc := NewModerationService(mockRepo, nil, slog.Default())

	result, err := svc.ToggleBan(context.Background(), "student123")

	assert.NoError(t, err)
	assert.True(t, result.IsBanned)
}
