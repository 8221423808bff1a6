package jobs

import "errors"

var (
	ErrValidation             = errors.New("validation error")
	ErrNotFound               = errors.New("job not found")
	ErrForbidden              = errors.New("forbidden")
	ErrJobFilled              = errors.New("job already filled")
	ErrOfferExpired           = errors.New("offer expired")
	ErrOfferResolved          = errors.New("offer already resolved")
	ErrAcknowledgmentRequired = errors.New("solo acknowledgment required")
	ErrNotEnoughSlots         = errors.New("not enough open slots for a team booking")
	ErrNoEmployees            = errors.New("business owner has no employees")
	ErrInvalidDropoutOption   = errors.New("invalid dropout option")
)
