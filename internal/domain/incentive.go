package domain

import "time"

// IncentiveConfig is the admin-editable promotion configuration.
// Audience payloads are free-form JSON: the client renders whatever
// the active promotion defines.
type IncentiveConfig struct {
	ID        int64  `json:"id"`
	Active    bool   `json:"active"`
	Cleaner   []byte `json:"-"`
	Homeowner []byte `json:"-"`

	UpdatedBy *int64    `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
