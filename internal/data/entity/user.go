package entity

import "fmt"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleUser    UserRole = "user"
	RoleManager UserRole = "manager"
)

// ParseRole accepts only the three known roles.
func ParseRole(s string) (UserRole, error) {
	switch r := UserRole(s); r {
	case RoleAdmin, RoleUser, RoleManager:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
