package jobs

import (
	"time"

	"tidyteam/internal/view"
)

type CreateJobRequest struct {
	HomeownerID           int64     `json:"homeowner_id" binding:"required"`
	AppointmentDate       time.Time `json:"appointment_date" binding:"required"`
	Address               string    `json:"address" binding:"required"`
	City                  string    `json:"city" binding:"required"`
	State                 string    `json:"state" binding:"required"`
	NumBeds               int       `json:"num_beds"`
	NumBaths              int       `json:"num_baths"`
	TotalCleanersRequired int       `json:"total_cleaners_required" binding:"required" validate:"gte=2"`
	TotalJobPrice         float64   `json:"total_job_price" binding:"required" validate:"gt=0"`
	TimeToBeCompleted     string    `json:"time_to_be_completed"`
}

type OfferJobRequest struct {
	CleanerID int64 `json:"cleaner_id" binding:"required"`
}

type DeclineOfferRequest struct {
	Reason string `json:"reason"`
}

type AcceptSoloRequest struct {
	Acknowledged bool `json:"acknowledged"`
}

type BookWithTeamRequest struct {
	EmployeeIDs []int64 `json:"employee_ids" binding:"required"`
}

type DropoutRequest struct {
	CleanerID int64 `json:"cleaner_id" binding:"required"`
}

type DropoutChoiceRequest struct {
	Option string `json:"option" binding:"required"`
}

// JobCardResponse is the list payload: the job plus the display fields
// the client card renders.
type JobCardResponse struct {
	Job  jobPayload   `json:"job"`
	Card view.JobCard `json:"card"`
}

type jobPayload struct {
	ID                    int64     `json:"id"`
	AppointmentDate       time.Time `json:"appointment_date"`
	Address               string    `json:"address"`
	City                  string    `json:"city"`
	State                 string    `json:"state"`
	NumBeds               int       `json:"num_beds"`
	NumBaths              int       `json:"num_baths"`
	TotalCleanersRequired int       `json:"total_cleaners_required"`
	CleanersConfirmed     int       `json:"cleaners_confirmed"`
	Status                string    `json:"status"`
	TimeToBeCompleted     string    `json:"time_to_be_completed,omitempty"`
}
