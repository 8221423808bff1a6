package bonus

import "errors"

var (
	ErrValidation = errors.New("invalid bonus request")
	ErrNotFound   = errors.New("bonus not found")
	ErrForbidden  = errors.New("bonus belongs to another user")
	ErrCreate     = errors.New("Failed to create bonus")
)
