package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"librio/pkg/domain"
)

func signToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// seedState writes a persisted session the way the store does, so the next
// invocation restores it.
func seedState(t *testing.T, stateDir string, role domain.Role) {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"identity": domain.Identity{ID: 1, Username: "alice", Email: "a@b.c", Role: role},
		"token":    signToken(t),
	})
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	if err := os.WriteFile(filepath.Join(stateDir, "session.json"), body, 0o600); err != nil {
		t.Fatalf("write state: %v", err)
	}
}

func runCommand(t *testing.T, serverURL, stateDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LIBRIO_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("LIBRIO_SERVER_URL", serverURL)
	t.Setenv("LIBRIO_STATE_DIR", stateDir)

	var buf bytes.Buffer
	c := &CLI{out: &buf}
	cmd := c.root()
	cmd.SetArgs(args)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	err := cmd.Execute()
	return buf.String(), err
}

func TestBooksListRequiresLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should leave the process when not logged in")
	}))
	t.Cleanup(srv.Close)

	_, err := runCommand(t, srv.URL, t.TempDir(), "books", "list")
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("err = %v, want a login hint", err)
	}
}

func TestBooksListRendersCatalog(t *testing.T) {
	stateDir := t.TempDir()
	seedState(t, stateDir, domain.RoleUser)

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []domain.Book{
			{ID: 1, Title: "Dune", AvailableQuantity: 1, TotalQuantity: 2},
		}})
	}))
	t.Cleanup(srv.Close)

	out, err := runCommand(t, srv.URL, stateDir, "books", "list")
	if err != nil {
		t.Fatalf("books list: %v", err)
	}
	if !strings.HasPrefix(gotAuth, "Bearer ") {
		t.Errorf("Authorization = %q, want the restored bearer token", gotAuth)
	}
	if !strings.Contains(out, "Dune") {
		t.Errorf("output missing book row:\n%s", out)
	}
}

func TestManageUsersDeniedForReader(t *testing.T) {
	stateDir := t.TempDir()
	seedState(t, stateDir, domain.RoleUser)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("denied route must not reach the server")
	}))
	t.Cleanup(srv.Close)

	_, err := runCommand(t, srv.URL, stateDir, "manage", "users", "list")
	if err == nil || !strings.Contains(err.Error(), "role may not") {
		t.Errorf("err = %v, want a role denial", err)
	}
}

func TestStaleCredentialEndsSession(t *testing.T) {
	stateDir := t.TempDir()
	seedState(t, stateDir, domain.RoleUser)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	_, err := runCommand(t, srv.URL, stateDir, "books", "list")
	if err == nil {
		t.Fatal("expected a session-expired error")
	}
	if _, statErr := os.Stat(filepath.Join(stateDir, "session.json")); !os.IsNotExist(statErr) {
		t.Error("persisted session should be cleared after a 401")
	}
}

func TestBorrowCommandRefusedForStaff(t *testing.T) {
	stateDir := t.TempDir()
	seedState(t, stateDir, domain.RoleStaff)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("staff borrow attempt must not reach the server")
	}))
	t.Cleanup(srv.Close)

	_, err := runCommand(t, srv.URL, stateDir, "books", "borrow", "1")
	if err == nil || !strings.Contains(err.Error(), "only readers") {
		t.Errorf("err = %v, want a reader-only refusal", err)
	}
}
