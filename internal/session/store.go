// Package session owns the persisted authentication state: the bearer token
// and the identity of the logged-in user. All reads and writes of that state
// go through Store; no other package touches the session file.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"taskpad/internal/config"
)

// Session is the authenticated context for the current client.
type Session struct {
	Token    string `json:"token"`
	Identity string `json:"identity"`
}

// Store persists the session as a single JSON file under the config dir.
type Store struct {
	path string
}

// NewStore creates a session store rooted at the config directory.
func NewStore(cfg *config.Config) *Store {
	return &Store{path: cfg.SessionPath()}
}

// Set persists the token and identity, overwriting any prior session.
// The session file is written with mode 0600.
func (s *Store) Set(token, identity string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(Session{Token: token, Identity: identity}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Token returns the persisted token, or empty string when no session exists.
func (s *Store) Token() string {
	return s.load().Token
}

// Identity returns the persisted identity, or empty string when no session exists.
func (s *Store) Identity() string {
	return s.load().Identity
}

// Clear removes the session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) load() Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A damaged session file reads as logged out, but the user
		// should be able to tell it apart from a missing one.
		slog.Warn("session file is not valid JSON, ignoring", "path", s.path, "error", err)
		return Session{}
	}
	return sess
}
