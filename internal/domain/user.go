package domain

import "time"

type UserRole string

const (
	RoleCleaner       UserRole = "cleaner"
	RoleHomeowner     UserRole = "homeowner"
	RoleBusinessOwner UserRole = "business_owner"
	RoleAdmin         UserRole = "admin"
)

type User struct {
	ID    int64    `json:"id"`
	Email string   `json:"email" validate:"required,email"`
	Role  UserRole `json:"role"`
	Name  string   `json:"name"`
	Phone string   `json:"phone,omitempty"`

	// Set for cleaners employed by a business owner. A business owner
	// "has employees" when at least one user points back at them.
	EmployerID *int64 `json:"employer_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
