// Package overlay persists the per-identity set of completed task ids.
// "Completed" is a client-only concept with no server representation: the
// overlay survives logout and re-login under the same identity, and switching
// accounts must never leak completion flags between users.
package overlay

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"taskpad/internal/config"
)

// ErrNoIdentity is returned when a save is attempted without a known
// identity. The overlay fails closed rather than writing under a shared key.
var ErrNoIdentity = errors.New("no identity for completion overlay")

// Set is a set of completed task ids.
type Set map[int64]bool

// Contains reports membership of id.
func (s Set) Contains(id int64) bool { return s[id] }

// Toggle flips membership of id.
func (s Set) Toggle(id int64) {
	if s[id] {
		delete(s, id)
	} else {
		s[id] = true
	}
}

// Store persists one JSON file of completed ids per identity.
type Store struct {
	cfg *config.Config
}

// NewStore creates an overlay store rooted at the config directory.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// Load returns the persisted set for identity, or an empty set when none
// exists. An empty identity always loads an empty set.
func (s *Store) Load(identity string) (Set, error) {
	if identity == "" {
		return Set{}, nil
	}
	data, err := os.ReadFile(s.cfg.OverlayPath(identity))
	if errors.Is(err, fs.ErrNotExist) {
		return Set{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	set := make(Set, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Save persists the set for identity, replacing any prior value. Saves with
// an empty identity are refused. Concurrent saves from two processes are
// last-writer-wins; there is no merge.
func (s *Store) Save(identity string, set Set) error {
	if identity == "" {
		return ErrNoIdentity
	}
	path := s.cfg.OverlayPath(identity)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
