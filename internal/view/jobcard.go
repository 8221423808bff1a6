package view

import (
	"time"

	"tidyteam/internal/domain"
)

// JobCard is the list/summary payload for a multi-cleaner job
// opportunity, assembled exactly as the client card renders it.
type JobCard struct {
	JobID          int64         `json:"job_id"`
	Badge          string        `json:"badge"`
	SlotsRemaining int           `json:"slots_remaining"`
	Earnings       string        `json:"earnings"`
	Distance       string        `json:"distance,omitempty"`
	RoomTags       []string      `json:"room_tags,omitempty"`
	Expiry         ExpiryLabel   `json:"expiry"`
	TimeConstraint string        `json:"time_constraint,omitempty"`
	Actions        ActionSurface `json:"actions"`
}

// CardInput is the per-viewer data a card needs beyond the job itself.
type CardInput struct {
	PerCleanerEarnings domain.Cents
	EarningsOffered    domain.Cents
	DistanceKm         *float64
	AssignedRooms      []string
	ExpiresAt          *time.Time
	Flags              ViewerFlags
}

// BuildJobCard assembles the card. Earnings precedence is
// perCleanerEarnings when present, else earningsOffered.
func BuildJobCard(j *domain.Job, in CardInput, now time.Time) JobCard {
	earnings := in.PerCleanerEarnings
	if earnings == 0 {
		earnings = in.EarningsOffered
	}

	return JobCard{
		JobID:          j.ID,
		Badge:          SlotBadge(j),
		SlotsRemaining: j.SlotsRemaining(),
		Earnings:       FormatPrice(earnings),
		Distance:       Distance(in.DistanceKm),
		RoomTags:       RoomTags(in.AssignedRooms),
		Expiry:         Expiry(in.ExpiresAt, now),
		TimeConstraint: TimeConstraint(j.TimeToBeCompleted),
		Actions:        Actions(j, in.Flags),
	}
}
