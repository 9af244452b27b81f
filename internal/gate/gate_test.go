package gate

import (
	"errors"
	"testing"

	"librio/pkg/domain"
)

type fakeSession struct {
	identity domain.Identity
	active   bool
}

func (f *fakeSession) Current() (domain.Identity, bool) {
	return f.identity, f.active
}

func withRole(role domain.Role) *fakeSession {
	return &fakeSession{identity: domain.Identity{ID: 1, Username: "x", Role: role}, active: true}
}

func TestAuthorizeRequiresIdentity(t *testing.T) {
	g := New(&fakeSession{})
	for _, route := range []Route{RouteBooks, RouteMyBorrows, RouteManageUsers} {
		if err := g.Authorize(route); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("Authorize(%s) without identity = %v, want ErrNotAuthenticated", route, err)
		}
	}
}

func TestAuthorizeRoleSets(t *testing.T) {
	cases := []struct {
		route Route
		user  error
		staff error
		admin error
	}{
		{RouteBooks, nil, nil, nil},
		{RouteProfile, nil, nil, nil},
		{RouteMyBorrows, nil, ErrForbidden, ErrForbidden},
		{RouteMyFines, nil, ErrForbidden, ErrForbidden},
		{RouteManageBooks, ErrForbidden, nil, nil},
		{RouteManageBorrows, ErrForbidden, nil, nil},
		{RouteManageFines, ErrForbidden, nil, nil},
		{RouteManageUsers, ErrForbidden, ErrForbidden, nil},
		{RouteActivityLogs, ErrForbidden, ErrForbidden, nil},
	}
	for _, tc := range cases {
		t.Run(string(tc.route), func(t *testing.T) {
			if err := New(withRole(domain.RoleUser)).Authorize(tc.route); !errors.Is(err, tc.user) {
				t.Errorf("USER: got %v, want %v", err, tc.user)
			}
			if err := New(withRole(domain.RoleStaff)).Authorize(tc.route); !errors.Is(err, tc.staff) {
				t.Errorf("STAFF: got %v, want %v", err, tc.staff)
			}
			if err := New(withRole(domain.RoleAdmin)).Authorize(tc.route); !errors.Is(err, tc.admin) {
				t.Errorf("ADMIN: got %v, want %v", err, tc.admin)
			}
		})
	}
}

// Admin is deliberately not admitted to user-only routes: the route declares
// its exact allowed set, there is no hierarchy.
func TestNoRoleInheritance(t *testing.T) {
	g := New(withRole(domain.RoleAdmin))
	if err := g.Authorize(RouteMyBorrows); !errors.Is(err, ErrForbidden) {
		t.Errorf("admin on my-borrows = %v, want ErrForbidden", err)
	}
	if err := g.Authorize(RouteMyFines); !errors.Is(err, ErrForbidden) {
		t.Errorf("admin on my-fines = %v, want ErrForbidden", err)
	}
}

func TestUnknownRoute(t *testing.T) {
	g := New(withRole(domain.RoleAdmin))
	if err := g.Authorize(Route("nope")); err == nil {
		t.Error("unknown route should not be admitted")
	}
}

func TestAllowedRoles(t *testing.T) {
	g := New(&fakeSession{})
	roles, ok := g.AllowedRoles(RouteManageBooks)
	if !ok || len(roles) != 2 {
		t.Fatalf("AllowedRoles(manage-books) = %v, %v", roles, ok)
	}
	if roles[0] != domain.RoleStaff || roles[1] != domain.RoleAdmin {
		t.Errorf("unexpected role set %v", roles)
	}
	if _, ok := g.AllowedRoles(Route("nope")); ok {
		t.Error("unknown route should not resolve")
	}
}
