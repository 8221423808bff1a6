package domain

import "time"

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferDeclined OfferStatus = "declined"
	OfferExpired  OfferStatus = "expired"
)

// Offer is a time-boxed proposal to one cleaner for one Job. It is
// resolved exactly once: accept, decline, or expiry.
type Offer struct {
	ID        int64       `json:"id"`
	JobID     int64       `json:"job_id"`
	CleanerID int64       `json:"cleaner_id"`
	Status    OfferStatus `json:"status"`
	ExpiresAt time.Time   `json:"expires_at"`

	TotalJobPrice   Cents   `json:"total_job_price"`
	PlatformFee     Cents   `json:"platform_fee"`
	EarningsOffered Cents   `json:"earnings_offered"`
	PercentOfWork   float64 `json:"percent_of_work"`

	DeclineReason string     `json:"decline_reason,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (o *Offer) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// SoloOffer converts the remaining cleaner's partial share into full
// payment after a teammate drop. OriginalShare is what they were owed;
// SoloEarnings is the full payment if they finish alone.
type SoloOffer struct {
	ID        int64       `json:"id"`
	JobID     int64       `json:"job_id"`
	CleanerID int64       `json:"cleaner_id"`
	Status    OfferStatus `json:"status"`
	ExpiresAt time.Time   `json:"expires_at"`

	OriginalShare Cents `json:"original_share"`
	SoloEarnings  Cents `json:"solo_earnings"`

	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (o *SoloOffer) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

func (o *SoloOffer) Bonus() (Cents, error) {
	return BonusAmount(o.SoloEarnings, o.OriginalShare)
}
