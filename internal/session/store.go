// Package session holds the zero-or-one active identity/credential pair and
// persists it across process restarts.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"librio/pkg/domain"
)

const stateFilename = "session.json"

// state is the durable on-disk form. Both fields live under fixed keys in a
// single file so they can only ever be replaced or removed together.
type state struct {
	Identity domain.Identity `json:"identity"`
	Token    string          `json:"token"`
}

// Store keeps the active identity/credential pair. All transitions are whole
// pair swaps; there is never a moment where one half is set without the other.
type Store struct {
	path string

	mu         sync.RWMutex
	identity   domain.Identity
	credential string
	active     bool
}

// NewStore prepares a store persisting under stateDir. Restore must be called
// before the store reflects any previously saved pair.
func NewStore(stateDir string) (*Store, error) {
	if strings.TrimSpace(stateDir) == "" {
		return nil, fmt.Errorf("session state dir is required")
	}
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{path: filepath.Join(stateDir, stateFilename)}, nil
}

// Restore loads any persisted pair. A missing, malformed, or half-present
// state file yields an empty pair; no server round-trip is made, an invalid
// credential is discovered lazily on first API use.
func (s *Store) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = false
	s.identity = domain.Identity{}
	s.credential = ""

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read session state: %w", err)
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		// Corrupt state file: drop it rather than carry it forward.
		_ = os.Remove(s.path)
		return nil
	}
	if !restorable(st) {
		_ = os.Remove(s.path)
		return nil
	}
	s.identity = st.Identity
	s.credential = st.Token
	s.active = true
	return nil
}

// Establish makes the given pair active and persists it, replacing any
// previous pair. Called after a successful login or registration.
func (s *Store) Establish(identity domain.Identity, credential string) error {
	if strings.TrimSpace(credential) == "" {
		return fmt.Errorf("credential is required")
	}
	if !identity.Role.Valid() {
		return fmt.Errorf("identity role %q is not recognized", identity.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistLocked(state{Identity: identity, Token: credential}); err != nil {
		return err
	}
	s.identity = identity
	s.credential = credential
	s.active = true
	return nil
}

// Clear removes the active pair and its durable copy. Called on explicit
// logout and whenever the transport observes an authentication rejection.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = domain.Identity{}
	s.credential = ""
	s.active = false
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session state: %w", err)
	}
	return nil
}

// Current returns the active identity, or false when no pair is active.
func (s *Store) Current() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.active
}

// Credential returns the active bearer token, or empty when none is active.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Expiry reports the credential's expiry claim when one is present. The
// claims are read without signature verification and are used for display
// only; the token stays opaque to all authorization decisions.
func (s *Store) Expiry() (time.Time, bool) {
	s.mu.RLock()
	token := s.credential
	s.mu.RUnlock()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) persistLocked(st state) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session state: %w", err)
	}
	return nil
}

func restorable(st state) bool {
	if strings.TrimSpace(st.Token) == "" {
		return false
	}
	if st.Identity.Username == "" || !st.Identity.Role.Valid() {
		return false
	}
	// Structural check only: the credential must at least look like a token
	// the server could have issued. Claims are never trusted here.
	if _, _, err := jwt.NewParser().ParseUnverified(st.Token, jwt.MapClaims{}); err != nil {
		return false
	}
	return true
}
