package domain

import "time"

type ClientResponse string

const (
	ResponseAccepted ClientResponse = "accepted"
	ResponseDeclined ClientResponse = "declined"
	ResponseExpired  ClientResponse = "expired"
)

// Appointment carries the client response / expiry bookkeeping behind
// decline and rebooking flows. A rebooked appointment points at its
// predecessor through OriginalBookingID; the FK is ON DELETE SET NULL,
// so a chain survives deletion of its origin as an orphaned root.
type Appointment struct {
	ID          int64     `json:"id"`
	JobID       *int64    `json:"job_id,omitempty"`
	HomeownerID int64     `json:"homeowner_id"`
	ScheduledAt time.Time `json:"scheduled_at"`

	BookedByCleanerID *int64 `json:"booked_by_cleaner_id,omitempty"`

	ClientRespondedAt *time.Time     `json:"client_responded_at,omitempty"`
	ClientResponse    ClientResponse `json:"client_response,omitempty"`
	DeclineReason     string         `json:"decline_reason,omitempty"`
	SuggestedDates    []string       `json:"suggested_dates,omitempty"`

	// Pending-approval window; unresponded appointments past this
	// moment are swept to expired.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	OriginalBookingID *int64 `json:"original_booking_id,omitempty"`
	RebookingAttempts int    `json:"rebooking_attempts"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) ResponsePending() bool {
	return a.ClientResponse == ""
}
