package checklist

import (
	"context"

	"tidyteam/internal/domain"
	"tidyteam/internal/repository"
)

type AssignmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomAssignment, error)
	ListForCleaner(ctx context.Context, jobID, cleanerID int64) ([]domain.RoomAssignment, error)
	ListByJob(ctx context.Context, jobID int64) ([]domain.RoomAssignment, error)
	SetItemCompleted(ctx context.Context, assignmentID, itemID int64, completed bool, expectedVersion int64) (*domain.RoomAssignment, error)
	UpdateStatus(ctx context.Context, assignmentID int64, status domain.RoomStatus) error
	TeamProgress(ctx context.Context, jobID int64) ([]repository.CleanerProgress, error)
}

type JobRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus) error
}

type NotificationSender interface {
	NotifyRoomCompleted(ctx context.Context, homeownerID, jobID, assignmentID int64) error
	NotifyJobCompleted(ctx context.Context, homeownerID, jobID int64) error
}
