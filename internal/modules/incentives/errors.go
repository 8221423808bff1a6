package incentives

import "errors"

var (
	ErrValidation = errors.New("invalid incentive config")
	ErrForbidden  = errors.New("admin access required")
)
