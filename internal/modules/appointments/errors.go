package appointments

import "errors"

var (
	ErrValidation       = errors.New("invalid appointment request")
	ErrNotFound         = errors.New("appointment not found")
	ErrForbidden        = errors.New("appointment belongs to another client")
	ErrAlreadyResponded = errors.New("appointment already responded")
)
