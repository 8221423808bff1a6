package view

import (
	"fmt"
	"time"
)

// ExpiryLabel is the countdown row on a job card or offer. Show is
// false when the offer has no deadline at all.
type ExpiryLabel struct {
	Text   string `json:"text,omitempty"`
	Urgent bool   `json:"urgent"`
	Show   bool   `json:"show"`
}

// Expiry buckets the time left against the wall clock the way the card
// renders it: past deadlines read "Expired", more than a day out shows
// whole days, under a day shows hours and minutes (urgent at six hours
// or less), under an hour shows minutes and is always urgent.
func Expiry(expiresAt *time.Time, now time.Time) ExpiryLabel {
	if expiresAt == nil {
		return ExpiryLabel{}
	}

	diff := expiresAt.Sub(now)
	if diff <= 0 {
		return ExpiryLabel{Text: "Expired", Urgent: true, Show: true}
	}

	if diff > 24*time.Hour {
		days := int(diff.Hours() / 24)
		return ExpiryLabel{Text: fmt.Sprintf("%dd left", days), Show: true}
	}

	hours := int(diff.Hours())
	minutes := int(diff.Minutes()) % 60
	if hours >= 1 {
		return ExpiryLabel{
			Text:   fmt.Sprintf("%dh %dm left", hours, minutes),
			Urgent: hours <= 6,
			Show:   true,
		}
	}

	return ExpiryLabel{Text: fmt.Sprintf("%dm left", minutes), Urgent: true, Show: true}
}
