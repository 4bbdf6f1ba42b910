package domain

import "time"

// Roles a user may register with.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// User represents a registered identity in the marketplace.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsSeller() bool {
	return u != nil && u.Role == RoleSeller
}

// CanList reports whether the user may create listings.
func (u *User) CanList() bool {
	return u.IsSeller() && u.Approved
}

// ValidRole reports whether a registration role is recognised.
func ValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller
}
