package domain

import "time"

type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobFilled     JobStatus = "filled"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// Job is a multi-cleaner cleaning appointment. Large homes are created
// with TotalCleanersRequired >= 2 and fill up slot by slot as cleaners
// accept offers or join the team.
type Job struct {
	ID              int64     `json:"id"`
	HomeownerID     int64     `json:"homeowner_id"`
	AppointmentDate time.Time `json:"appointment_date"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`

	NumBeds  int `json:"num_beds"`
	NumBaths int `json:"num_baths"`

	TotalCleanersRequired int       `json:"total_cleaners_required"`
	CleanersConfirmed     int       `json:"cleaners_confirmed"`
	Status                JobStatus `json:"status"`

	TotalJobPrice Cents `json:"total_job_price"`

	// "anytime" or a specific window label
	TimeToBeCompleted string `json:"time_to_be_completed,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlotsRemaining is always >= 0: CleanersConfirmed never exceeds
// TotalCleanersRequired.
func (j *Job) SlotsRemaining() int {
	return j.TotalCleanersRequired - j.CleanersConfirmed
}

func (j *Job) IsFilled() bool {
	return j.Status == JobFilled || j.SlotsRemaining() == 0
}
