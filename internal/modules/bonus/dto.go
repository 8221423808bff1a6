package bonus

import (
	"tidyteam/internal/domain"
	"tidyteam/internal/view"
)

type CreateBonusRequest struct {
	CleanerID int64   `json:"cleaner_id" binding:"required"`
	JobID     *int64  `json:"job_id"`
	Amount    float64 `json:"amount" binding:"required" validate:"gt=0"`
	Note      string  `json:"note"`
}

// BonusResponse is the bonus plus its display strip.
type BonusResponse struct {
	Bonus           *domain.Bonus  `json:"bonus"`
	AmountFormatted string         `json:"amount_formatted"`
	Timeline        []TimelineStep `json:"timeline"`
}

func toBonusResponse(b *domain.Bonus) *BonusResponse {
	return &BonusResponse{
		Bonus:           b,
		AmountFormatted: view.FormatPrice(b.Amount),
		Timeline:        BuildTimeline(b),
	}
}
