package domain

import "time"

// UserRole is informational only; it never gates an operation.
type UserRole string

const (
	UserRoleBuyer  UserRole = "buyer"
	UserRoleSeller UserRole = "seller"
)

// User is the domain model for marketplace accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Location     Location
	Role         UserRole
	CreatedAt    time.Time
}

// PublicUser is the projection safe to return to clients.
type PublicUser struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Location Location `json:"location"`
	Role     UserRole `json:"userType,omitempty"`
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Location: u.Location,
		Role:     u.Role,
	}
}
