// Package gate decides route admission for the current identity. The check is
// advisory: it keeps unauthorized views from rendering client-side, the
// server still enforces authorization on every endpoint.
package gate

import (
	"errors"
	"fmt"

	"librio/pkg/domain"
)

// Route names a navigable view. The set mirrors the server's screens.
type Route string

const (
	RouteBooks         Route = "books"
	RouteProfile       Route = "profile"
	RouteMyBorrows     Route = "my-borrows"
	RouteMyFines       Route = "my-fines"
	RouteManageBooks   Route = "manage-books"
	RouteManageBorrows Route = "manage-borrows"
	RouteManageFines   Route = "manage-fines"
	RouteManageUsers   Route = "manage-users"
	RouteActivityLogs  Route = "activity-logs"
)

// RouteDefault is where a denied-but-authenticated identity is sent.
const RouteDefault = RouteBooks

var (
	// ErrNotAuthenticated means no identity is active; the caller should
	// send the user to the login entry point.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden means the active identity's role is not in the route's
	// allowed set.
	ErrForbidden = errors.New("forbidden")
)

// SessionReader is the slice of the session store the gate consults.
type SessionReader interface {
	Current() (domain.Identity, bool)
}

// Gate holds the route table. Each route declares its exact allowed-role set;
// an empty set admits any authenticated identity. There is no role
// inheritance: ADMIN is not granted USER-only routes unless listed.
type Gate struct {
	sessions SessionReader
	routes   map[Route][]domain.Role
}

// New builds a gate over the default route table.
func New(sessions SessionReader) *Gate {
	return &Gate{
		sessions: sessions,
		routes: map[Route][]domain.Role{
			RouteBooks:         nil,
			RouteProfile:       nil,
			RouteMyBorrows:     {domain.RoleUser},
			RouteMyFines:       {domain.RoleUser},
			RouteManageBooks:   {domain.RoleStaff, domain.RoleAdmin},
			RouteManageBorrows: {domain.RoleStaff, domain.RoleAdmin},
			RouteManageFines:   {domain.RoleStaff, domain.RoleAdmin},
			RouteManageUsers:   {domain.RoleAdmin},
			RouteActivityLogs:  {domain.RoleAdmin},
		},
	}
}

// Authorize admits the current identity to route, or reports why not.
func (g *Gate) Authorize(route Route) error {
	allowed, ok := g.routes[route]
	if !ok {
		return fmt.Errorf("unknown route %q", route)
	}
	identity, active := g.sessions.Current()
	if !active {
		return ErrNotAuthenticated
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// AllowedRoles returns the route's declared role set (empty means any
// authenticated identity) and whether the route exists.
func (g *Gate) AllowedRoles(route Route) ([]domain.Role, bool) {
	allowed, ok := g.routes[route]
	if !ok {
		return nil, false
	}
	out := make([]domain.Role, len(allowed))
	copy(out, allowed)
	return out, true
}
