package view

import (
	"fmt"
	"time"

	"tidyteam/internal/domain"
)

// LargeHomeWarning is the entry gate shown to a solo cleaner browsing
// an oversized job: team clean vs clean solo with an acknowledgment.
type LargeHomeWarning struct {
	BedsLabel           string `json:"beds_label"`
	BathsLabel          string `json:"baths_label"`
	RecommendedCleaners int    `json:"recommended_cleaners"`
}

// BuildLargeHomeWarning applies the display defaults: "3+" for absent
// bed/bath counts, the configured recommendation when none is set.
func BuildLargeHomeWarning(numBeds, numBaths, recommended, defaultRecommended int) LargeHomeWarning {
	if recommended <= 0 {
		recommended = defaultRecommended
	}
	return LargeHomeWarning{
		BedsLabel:           BedBathLabel(numBeds),
		BathsLabel:          BedBathLabel(numBaths),
		RecommendedCleaners: recommended,
	}
}

// BreakdownRow is one line of the offer's earnings breakdown.
type BreakdownRow struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// RoomDetail is the per-room time/earnings line on an offer.
type RoomDetail struct {
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Minutes  int    `json:"minutes,omitempty"`
	Earnings string `json:"earnings,omitempty"`
}

// OfferView is the full offer modal payload: three breakdown rows plus
// optional per-room detail. Arithmetic consistency of the rows comes
// from domain.SplitFee at offer creation, not from re-validation here.
type OfferView struct {
	OfferID    int64          `json:"offer_id"`
	JobID      int64          `json:"job_id"`
	FeePercent float64        `json:"fee_percent"` // display percent, e.g. 13 for 0.13
	Breakdown  []BreakdownRow `json:"breakdown"`
	Rooms      []RoomDetail   `json:"rooms,omitempty"`
	Expiry     ExpiryLabel    `json:"expiry"`
}

func BuildOfferView(o *domain.Offer, rooms []domain.RoomAssignment, feePercent float64, now time.Time) OfferView {
	v := OfferView{
		OfferID:    o.ID,
		JobID:      o.JobID,
		FeePercent: feePercent * 100,
		Breakdown: []BreakdownRow{
			{Label: "Total Job Value", Amount: FormatPrice(o.TotalJobPrice)},
			{Label: "Platform Fee", Amount: FormatPrice(o.PlatformFee)},
			{Label: "Your Share", Amount: FormatPrice(o.EarningsOffered)},
		},
		Expiry: Expiry(&o.ExpiresAt, now),
	}
	for _, r := range rooms {
		v.Rooms = append(v.Rooms, RoomDetail{
			Label:    r.DisplayLabel,
			Icon:     RoomIcon(r.RoomType),
			Minutes:  r.EstimatedMinutes,
			Earnings: FormatPrice(r.RoomEarnings),
		})
	}
	return v
}

// Dropout remediation option ids, in the order the modal lists them.
const (
	DropoutProceed    = "proceed"
	DropoutWait       = "wait_replacement"
	DropoutReschedule = "reschedule"
	DropoutCancel     = "cancel"
)

type DropoutOption struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Recommended bool   `json:"recommended"`
}

// BuildDropoutOptions returns exactly four mutually exclusive options.
// "Proceed" is the only option ever marked recommended, and only when
// at least one cleaner remains. All four paths are penalty-free to the
// homeowner; enforcement of that policy is elsewhere.
func BuildDropoutOptions(remainingCleaners int) []DropoutOption {
	return []DropoutOption{
		{ID: DropoutProceed, Title: "Proceed with Remaining Cleaner(s)", Recommended: remainingCleaners >= 1},
		{ID: DropoutWait, Title: "Wait for a Replacement"},
		{ID: DropoutReschedule, Title: "Reschedule"},
		{ID: DropoutCancel, Title: "Cancel the Appointment"},
	}
}

// SoloOfferView is the binary solo-completion decision payload.
type SoloOfferView struct {
	OfferID       int64  `json:"offer_id"`
	OriginalShare string `json:"original_share"`
	SoloEarnings  string `json:"solo_earnings"`
	Bonus         string `json:"bonus"`
	ExpiresIn     string `json:"expires_in"`
}

// BuildSoloOfferView renders the bonus as soloEarnings - originalShare.
// When the offer carries no deadline the expiry falls back to the
// literal "12 hours" the client shows; that is display copy, not an
// enforced window.
func BuildSoloOfferView(o *domain.SoloOffer, now time.Time) (SoloOfferView, error) {
	bonus, err := o.Bonus()
	if err != nil {
		return SoloOfferView{}, err
	}

	expiresIn := "12 hours"
	if !o.ExpiresAt.IsZero() {
		if lbl := Expiry(&o.ExpiresAt, now); lbl.Show {
			expiresIn = lbl.Text
		}
	}

	return SoloOfferView{
		OfferID:       o.ID,
		OriginalShare: FormatPrice(o.OriginalShare),
		SoloEarnings:  FormatPrice(o.SoloEarnings),
		Bonus:         FormatPrice(bonus),
		ExpiresIn:     expiresIn,
	}, nil
}

// TeamProgressRow is a display-only co-cleaner progress line.
type TeamProgressRow struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}

// ProgressPercent is completed/total as a whole percent; zero items is
// zero percent, not a division error.
func ProgressPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(completed) / float64(total) * 100)
}

// ProgressLabel renders "3/7 tasks" style copy for the overall bar.
func ProgressLabel(completed, total int) string {
	return fmt.Sprintf("%d/%d tasks", completed, total)
}
