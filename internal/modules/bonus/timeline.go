package bonus

import (
	"time"

	"tidyteam/internal/domain"
)

// bank transfers settle in business days, not calendar days
const arrivalBusinessDays = 3

// TimelineStep is one row of the payout timeline strip.
type TimelineStep struct {
	Label   string `json:"label"`
	Date    string `json:"date"`
	Done    bool   `json:"done"`
	Current bool   `json:"current"`
}

// AddBusinessDays walks forward n business days from t, skipping
// Saturday and Sunday. A Friday initiation with n=3 lands on
// Wednesday.
func AddBusinessDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n--
		}
	}
	return t
}

// EstimatedArrival is the bank-arrival date for a payout initiated at
// the given moment. Display-only; actual settlement is up to the bank.
func EstimatedArrival(initiatedAt time.Time) time.Time {
	return AddBusinessDays(initiatedAt, arrivalBusinessDays)
}

// BuildTimeline renders the three-step payout strip: initiated,
// processing, arrival estimate. The current step follows the payout
// status.
func BuildTimeline(b *domain.Bonus) []TimelineStep {
	arrival := EstimatedArrival(b.InitiatedAt)

	steps := []TimelineStep{
		{Label: "Bonus initiated", Date: b.InitiatedAt.Format("Jan 2")},
		{Label: "Processing", Date: b.InitiatedAt.Format("Jan 2")},
		{Label: "Estimated bank arrival", Date: arrival.Format("Jan 2")},
	}

	switch b.Status {
	case domain.PayoutPending:
		steps[0].Done = true
		steps[1].Current = true
	case domain.PayoutProcessing:
		steps[0].Done = true
		steps[1].Done = true
		steps[2].Current = true
	case domain.PayoutPaid:
		for i := range steps {
			steps[i].Done = true
		}
		if b.PaidAt != nil {
			steps[2].Date = b.PaidAt.Format("Jan 2")
		}
	case domain.PayoutFailed:
		steps[0].Done = true
		steps[1].Current = true
		steps[1].Label = "Processing failed"
	}
	return steps
}
