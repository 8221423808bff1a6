package appointments

import "time"

type CreateAppointmentRequest struct {
	JobID             *int64    `json:"job_id"`
	HomeownerID       int64     `json:"homeowner_id" binding:"required"`
	ScheduledAt       time.Time `json:"scheduled_at" binding:"required"`
	BookedByCleanerID *int64    `json:"booked_by_cleaner_id"`
}

type RespondRequest struct {
	Response       string   `json:"response" binding:"required" validate:"oneof=accepted declined"`
	DeclineReason  string   `json:"decline_reason"`
	SuggestedDates []string `json:"suggested_dates"`
}

type RebookRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}
