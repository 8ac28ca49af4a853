// Package access holds every role comparison in the service. Handlers and
// services ask a Gate instead of comparing role strings themselves.
package access

import (
	"movie-booking/internal/data/entity"
	"movie-booking/pkg/apperr"

	"github.com/google/uuid"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == entity.RoleAdmin
}

func (a *Actor) Is(role entity.UserRole) bool {
	return a != nil && a.Role == role
}

// Gate decides whether actor may run an operation. safe marks read-only
// operations. A nil actor means an anonymous caller.
type Gate interface {
	Check(actor *Actor, safe bool) error
}

// ReadOnlyExceptAdmin lets anyone read and only admins mutate.
type ReadOnlyExceptAdmin struct {
	AllowAnonymousReads bool
}

func (g ReadOnlyExceptAdmin) Check(actor *Actor, safe bool) error {
	if safe {
		if actor == nil && !g.AllowAnonymousReads {
			return apperr.Unauthorized("Authentication required")
		}
		return nil
	}
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !actor.IsAdmin() {
		return apperr.Forbidden("Admin access required")
	}
	return nil
}

// ExactRole admits only authenticated actors holding Role, for reads and writes alike.
type ExactRole struct {
	Role entity.UserRole
}

func (g ExactRole) Check(actor *Actor, _ bool) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !actor.Is(g.Role) {
		return apperr.Forbidden("%s access required", g.Role)
	}
	return nil
}

// Authenticated admits any signed-in actor.
type Authenticated struct{}

func (Authenticated) Check(actor *Actor, _ bool) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return nil
}

// CanBook reports whether actor may hold reservations. Admins are barred
// from booking as a business rule.
func CanBook(actor *Actor) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if actor.IsAdmin() {
		return apperr.Forbidden("Admin users are not allowed to book tickets")
	}
	return nil
}

// CanListAllReservations is the admin-only view over every booking.
func CanListAllReservations(actor *Actor) error {
	return ExactRole{Role: entity.RoleAdmin}.Check(actor, true)
}
