package view

import "tidyteam/internal/domain"

// ActionSurface names the single action row a job card shows for a
// given viewer.
type ActionSurface string

const (
	ActionsNone        ActionSurface = "none"
	ActionsOffer       ActionSurface = "offer"         // Accept / Decline pair
	ActionsBookTeam    ActionSurface = "book_team"     // Book with Team (+ optional Join Solo)
	ActionsRequestJoin ActionSurface = "request_join"  // Request to Join Team
	ActionsViewDetails ActionSurface = "view_details"  // fallback
)

// ViewerFlags describes the role context a card is rendered in.
type ViewerFlags struct {
	IsOffer         bool `json:"is_offer"`
	IsBusinessOwner bool `json:"is_business_owner"`
	HasEmployees    bool `json:"has_employees"`
	CanJoinTeam     bool `json:"can_join_team"`
	ShowActions     bool `json:"show_actions"`
}

// Actions picks the card's action row by the client's priority order:
// offer pair, then business-owner team booking, then join request,
// then the view-details fallback. ShowActions=false suppresses the row
// entirely.
func Actions(j *domain.Job, f ViewerFlags) ActionSurface {
	if !f.ShowActions {
		return ActionsNone
	}
	if f.IsOffer {
		return ActionsOffer
	}
	if f.IsBusinessOwner && f.HasEmployees && j.SlotsRemaining() >= 2 {
		return ActionsBookTeam
	}
	if f.CanJoinTeam {
		return ActionsRequestJoin
	}
	return ActionsViewDetails
}
