package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "hotel_owner"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleOwner, RoleAdmin:
		return Role(s), nil
	}
	return "", Ef(ErrInvalidInput, "unknown role %q", s)
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated caller as decoded from the session token.
type Principal struct {
	UserID string
	Role   Role
}
