package domain

import "time"

type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "pending"
	PayoutProcessing PayoutStatus = "processing"
	PayoutPaid       PayoutStatus = "paid"
	PayoutFailed     PayoutStatus = "failed"
)

// Bonus is a discretionary payout from a homeowner or business owner
// to a cleaner, e.g. the solo-completion incentive or a tip.
type Bonus struct {
	ID        int64        `json:"id"`
	Reference string       `json:"reference"`
	CleanerID int64        `json:"cleaner_id"`
	PayerID   int64        `json:"payer_id"`
	JobID     *int64       `json:"job_id,omitempty"`
	Amount    Cents        `json:"amount"`
	Note      string       `json:"note,omitempty"`
	Status    PayoutStatus `json:"status"`

	InitiatedAt time.Time  `json:"initiated_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
