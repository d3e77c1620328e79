package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/visionday/hub/pkg/models"
)

// State is the persisted session snapshot.
type State struct {
	Token        string       `json:"token,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         *models.User `json:"user,omitempty"`
}

// Store persists the session to a single JSON file. Writes go through a
// temp file plus rename so a crash never leaves a half-written session.
type Store struct {
	mu    sync.RWMutex
	path  string
	state State
}

// DefaultPath resolves the session file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "visionday", "session.json"), nil
}

// Open loads the store from path. A missing or corrupt file yields an
// empty session rather than an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return s, nil
	}
	s.state = st
	return s, nil
}

// Token returns the access token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// RefreshToken returns the refresh token, empty when none was issued.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RefreshToken
}

// User returns the logged-in user, nil when logged out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Save replaces the session state and persists it.
func (s *Store) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	return s.persist()
}

// SetUser updates the stored user while keeping the tokens.
func (s *Store) SetUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = u
	return s.persist()
}

// Clear wipes the session state and the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
