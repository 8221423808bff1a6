// Package view holds the display contracts the mobile client renders
// verbatim: price strings, slot badges, room previews, countdowns and
// modal payloads. Everything here is a pure function so payloads stay
// byte-stable across server and tests.
package view

import (
	"fmt"
	"strings"

	"tidyteam/internal/domain"
)

const kmToMiles = 0.621371

// FormatPrice renders "TBD" for an unset amount. Zero is deliberately
// indistinguishable from unset: the client treats both as falsy and the
// payloads have to match it.
func FormatPrice(amount domain.Cents) string {
	if amount == 0 {
		return "TBD"
	}
	return fmt.Sprintf("$%.2f", amount.Dollars())
}

// SlotBadge returns exactly one of "Filled", "1 Slot Left!" or
// "{n} Slots Open".
func SlotBadge(j *domain.Job) string {
	if j.Status == domain.JobFilled {
		return "Filled"
	}
	if j.SlotsRemaining() == 1 {
		return "1 Slot Left!"
	}
	return fmt.Sprintf("%d Slots Open", j.SlotsRemaining())
}

// Distance converts kilometers to miles at one decimal. Nil distance
// renders nothing.
func Distance(km *float64) string {
	if km == nil {
		return ""
	}
	return fmt.Sprintf("%.1f mi away", *km*kmToMiles)
}

// RoomTags previews up to four room labels, collapsing the rest into a
// "+N more" tag. Empty input yields no tags at all.
func RoomTags(rooms []string) []string {
	if len(rooms) == 0 {
		return nil
	}
	if len(rooms) <= 4 {
		return append([]string(nil), rooms...)
	}
	out := append([]string(nil), rooms[:4]...)
	return append(out, fmt.Sprintf("+%d more", len(rooms)-4))
}

// TimeConstraint returns the time window row, or "" when the job can
// be done anytime (case-insensitive) or carries no window.
func TimeConstraint(timeToBeCompleted string) string {
	if timeToBeCompleted == "" || strings.EqualFold(timeToBeCompleted, "anytime") {
		return ""
	}
	return timeToBeCompleted
}

// BedBathLabel falls back to "3+" when the count is absent or zero,
// matching the client's falsy default. String-typed counts upstream
// coerce to the same display.
func BedBathLabel(n int) string {
	if n <= 0 {
		return "3+"
	}
	return fmt.Sprintf("%d", n)
}

// RoomIcon keys the client's icon set by room type.
func RoomIcon(t domain.RoomType) string {
	switch t {
	case domain.RoomBedroom:
		return "moon"
	case domain.RoomBathroom:
		return "droplet"
	case domain.RoomKitchen:
		return "coffee"
	case domain.RoomLivingRoom:
		return "tv"
	case domain.RoomDiningRoom:
		return "grid"
	default:
		return "square"
	}
}
