package checklist

import (
	"tidyteam/internal/domain"
	"tidyteam/internal/view"
)

type ToggleItemRequest struct {
	Completed bool  `json:"completed"`
	Version   int64 `json:"version" binding:"required"`
}

// RoomResponse is the room payload the cleaner's checklist screen
// renders: the assignment plus its progress line.
type RoomResponse struct {
	Room          *domain.RoomAssignment `json:"room"`
	Completed     int                    `json:"completed"`
	Total         int                    `json:"total"`
	Percent       int                    `json:"percent"`
	ProgressLabel string                 `json:"progress_label"`
}

// ProgressResponse covers the viewer's own rooms on one job.
type ProgressResponse struct {
	JobID         int64   `json:"job_id"`
	Rooms         []RoomResponse `json:"rooms"`
	Completed     int     `json:"completed"`
	Total         int     `json:"total"`
	Percent       int     `json:"percent"`
	ProgressLabel string  `json:"progress_label"`
	AllRoomsDone  bool    `json:"all_rooms_done"`
}

// TeamProgressResponse is the display-only co-cleaner strip.
type TeamProgressResponse struct {
	JobID int64                  `json:"job_id"`
	Rows  []view.TeamProgressRow `json:"rows"`
}

// CompleteRoomResponse flags the homeowner banner when the last room
// of the job just finished.
type CompleteRoomResponse struct {
	Room         *domain.RoomAssignment `json:"room"`
	JobCompleted bool                   `json:"job_completed"`
}
