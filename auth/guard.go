// Package auth holds the pure authorization guard. The middleware builds a
// Session from the JWT claims and handlers pass it in explicitly, so the
// check itself never reaches into ambient request state.
package auth

import (
	"errors"

	"github.com/kelechi/skylinkbackend/models"
)

var (
	// ErrUnauthorized: no session at all (anonymous caller).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden: authenticated, but the role is not allowed the action.
	ErrForbidden = errors.New("forbidden")
)

// Session is the claim set attached to a request after a successful login.
type Session struct {
	UserID string
	Email  string
	Role   models.Role
}

// Authorize allows the session when its role is a member of allowed.
// It has no side effects; redirects and error responses are the caller's job.
func Authorize(s *Session, allowed ...models.Role) error {
	if s == nil {
		return ErrUnauthorized
	}
	for _, r := range allowed {
		if s.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

// AnyStaff is the role set for general admin-area access: product and
// subscriber management is open to both tiers.
func AnyStaff() []models.Role {
	return []models.Role{models.RoleAdmin, models.RoleStaff}
}
