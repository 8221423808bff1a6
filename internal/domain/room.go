package domain

import "time"

type RoomType string

const (
	RoomBedroom    RoomType = "bedroom"
	RoomBathroom   RoomType = "bathroom"
	RoomKitchen    RoomType = "kitchen"
	RoomLivingRoom RoomType = "living_room"
	RoomDiningRoom RoomType = "dining_room"
	RoomOther      RoomType = "other"
)

type RoomStatus string

const (
	RoomPending    RoomStatus = "pending"
	RoomInProgress RoomStatus = "in_progress"
	RoomCompleted  RoomStatus = "completed"
)

// RoomAssignment is the subset of a Job's rooms given to one cleaner,
// tracked through pending -> in_progress -> completed. Version is a
// monotonic counter bumped on every item write; stale client toggles
// carry an old version and are rejected instead of silently merged.
type RoomAssignment struct {
	ID           int64      `json:"id"`
	JobID        int64      `json:"job_id"`
	CleanerID    int64      `json:"cleaner_id"`
	RoomType     RoomType   `json:"room_type"`
	DisplayLabel string     `json:"display_label"`
	Status       RoomStatus `json:"status"`
	Version      int64      `json:"version"`

	EstimatedMinutes int   `json:"estimated_minutes,omitempty"`
	RoomEarnings     Cents `json:"room_earnings,omitempty"`

	Items []ChecklistItem `json:"checklist_items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AllItemsDone reports whether the room qualifies for completion:
// every item checked and at least one item present.
func (a *RoomAssignment) AllItemsDone() bool {
	if len(a.Items) == 0 {
		return false
	}
	for _, it := range a.Items {
		if !it.Completed {
			return false
		}
	}
	return true
}

type ChecklistItem struct {
	ID               int64  `json:"id"`
	RoomAssignmentID int64  `json:"room_assignment_id"`
	Text             string `json:"text"`
	Completed        bool   `json:"completed"`
	Position         int    `json:"position"`
}
