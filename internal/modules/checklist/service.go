package checklist

import (
	"context"
	"errors"

	"tidyteam/internal/domain"
	"tidyteam/internal/repository"
	"tidyteam/internal/view"

	"gorm.io/gorm"
)

type Service struct {
	assignments AssignmentRepository
	jobs        JobRepository
	notifs      NotificationSender
}

func NewService(assignments AssignmentRepository, jobs JobRepository, notifs NotificationSender) *Service {
	return &Service{assignments: assignments, jobs: jobs, notifs: notifs}
}

func (s *Service) getOwnRoom(ctx context.Context, assignmentID, cleanerID int64) (*domain.RoomAssignment, error) {
	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.CleanerID != cleanerID {
		return nil, ErrForbidden
	}
	return a, nil
}

// ToggleItem writes one checklist item state. Writes are versioned:
// the client sends the version it last saw, and a toggle against an
// older version is rejected so the caller can refetch instead of
// clobbering a newer write. The first toggle on a pending room moves
// it to in_progress.
func (s *Service) ToggleItem(ctx context.Context, assignmentID, itemID, cleanerID int64, completed bool, version int64) (*RoomResponse, error) {
	before, err := s.getOwnRoom(ctx, assignmentID, cleanerID)
	if err != nil {
		return nil, err
	}

	a, err := s.assignments.SetItemCompleted(ctx, assignmentID, itemID, completed, version)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleVersion):
			return nil, ErrStaleVersion
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}

	if before.Status == domain.RoomPending {
		if err := s.assignments.UpdateStatus(ctx, assignmentID, domain.RoomInProgress); err != nil {
			return nil, err
		}
		a.Status = domain.RoomInProgress
	}
	return roomResponse(a), nil
}

func roomResponse(a *domain.RoomAssignment) *RoomResponse {
	done := 0
	for _, it := range a.Items {
		if it.Completed {
			done++
		}
	}
	return &RoomResponse{
		Room:          a,
		Completed:     done,
		Total:         len(a.Items),
		Percent:       view.ProgressPercent(done, len(a.Items)),
		ProgressLabel: view.ProgressLabel(done, len(a.Items)),
	}
}

// CompleteRoom marks the room done. The gate is hard: every item must
// be checked, and a room with zero items can never be completed. When
// the last room of the job finishes, the job flips to completed and
// the homeowner is notified.
func (s *Service) CompleteRoom(ctx context.Context, assignmentID, cleanerID int64) (*CompleteRoomResponse, error) {
	a, err := s.getOwnRoom(ctx, assignmentID, cleanerID)
	if err != nil {
		return nil, err
	}

	if len(a.Items) == 0 {
		return nil, ErrEmptyChecklist
	}
	if !a.AllItemsDone() {
		return nil, ErrItemsRemaining
	}

	if err := s.assignments.UpdateStatus(ctx, assignmentID, domain.RoomCompleted); err != nil {
		return nil, err
	}
	a.Status = domain.RoomCompleted

	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyRoomCompleted(ctx, j.HomeownerID, j.ID, a.ID)
	}

	allDone, err := s.allRoomsCompleted(ctx, a.JobID)
	if err != nil {
		return nil, err
	}
	if allDone {
		if err := s.jobs.UpdateStatus(ctx, j.ID, domain.JobCompleted); err != nil {
			return nil, err
		}
		if s.notifs != nil {
			_ = s.notifs.NotifyJobCompleted(ctx, j.HomeownerID, j.ID)
		}
	}

	return &CompleteRoomResponse{Room: a, JobCompleted: allDone}, nil
}

func (s *Service) allRoomsCompleted(ctx context.Context, jobID int64) (bool, error) {
	rooms, err := s.assignments.ListByJob(ctx, jobID)
	if err != nil {
		return false, err
	}
	if len(rooms) == 0 {
		return false, nil
	}
	for _, r := range rooms {
		if r.Status != domain.RoomCompleted {
			return false, nil
		}
	}
	return true, nil
}

// Progress covers the viewer's own rooms only; co-cleaner detail goes
// through TeamProgress instead.
func (s *Service) Progress(ctx context.Context, jobID, cleanerID int64) (*ProgressResponse, error) {
	rooms, err := s.assignments.ListForCleaner(ctx, jobID, cleanerID)
	if err != nil {
		return nil, err
	}

	resp := &ProgressResponse{JobID: jobID, Rooms: make([]RoomResponse, 0, len(rooms))}
	roomsDone := 0
	for i := range rooms {
		rr := roomResponse(&rooms[i])
		resp.Rooms = append(resp.Rooms, *rr)
		resp.Completed += rr.Completed
		resp.Total += rr.Total
		if rooms[i].Status == domain.RoomCompleted {
			roomsDone++
		}
	}
	resp.Percent = view.ProgressPercent(resp.Completed, resp.Total)
	resp.ProgressLabel = view.ProgressLabel(resp.Completed, resp.Total)
	resp.AllRoomsDone = len(rooms) > 0 && roomsDone == len(rooms)
	return resp, nil
}

// TeamProgress is the co-cleaner strip: name and percent only, no
// per-item detail across cleaners.
func (s *Service) TeamProgress(ctx context.Context, jobID int64) (*TeamProgressResponse, error) {
	rows, err := s.assignments.TeamProgress(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := &TeamProgressResponse{JobID: jobID, Rows: make([]view.TeamProgressRow, 0, len(rows))}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, view.TeamProgressRow{
			Name:    r.Name,
			Percent: view.ProgressPercent(r.Completed, r.Total),
		})
	}
	return resp, nil
}
