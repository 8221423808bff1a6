package checklist

import "errors"

var (
	ErrNotFound       = errors.New("room assignment not found")
	ErrForbidden      = errors.New("room belongs to another cleaner")
	ErrStaleVersion   = errors.New("checklist changed on the server")
	ErrItemsRemaining = errors.New("room has unfinished checklist items")
	ErrEmptyChecklist = errors.New("room has no checklist items")
)
