// Package core reconciles the authoritative task list with the locally
// persisted completion overlay and mediates every mutation, so the two never
// diverge.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskpad/internal/api"
	"taskpad/internal/overlay"
	"taskpad/internal/task"
)

// ErrEmptyTitle is returned when a create is attempted with a blank title.
// The remote API is never contacted in that case.
var ErrEmptyTitle = errors.New("title required")

// ErrSessionExpired is returned when the API rejected the stored token.
// The session has already been cleared; the caller should route the user to
// login. The completion overlay is left intact for the next login.
var ErrSessionExpired = errors.New("session expired")

// API is the slice of the task API the core needs. Auth operations
// (register, login) stay outside the core; it only ever acts on behalf of an
// established session.
type API interface {
	ListTasks(ctx context.Context) ([]task.Task, error)
	CreateTask(ctx context.Context, title string) (task.Task, error)
	UpdateTask(ctx context.Context, id int64, title string) (task.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// SessionStore is the session state the core reads, and clears on expiry.
type SessionStore interface {
	Identity() string
	Clear() error
}

// OverlayStore persists the per-identity completion set.
type OverlayStore interface {
	Load(identity string) (overlay.Set, error)
	Save(identity string, set overlay.Set) error
}

// Core holds the transient task cache and the loaded overlay for the current
// identity. All operations run from a single goroutine; there is no locking.
type Core struct {
	api       API
	sessions  SessionStore
	overlays  OverlayStore
	tasks     []task.Task
	completed overlay.Set
}

// New creates a core over the given API client and stores.
func New(a API, sessions SessionStore, overlays OverlayStore) *Core {
	return &Core{api: a, sessions: sessions, overlays: overlays}
}

// Hydrate fetches the authoritative task list, replaces the local cache
// wholesale, and loads the overlay for the current identity. An auth failure
// clears the session and returns ErrSessionExpired; any other failure is
// surfaced as-is with the session kept, so a flaky network does not log the
// user out.
func (c *Core) Hydrate(ctx context.Context) error {
	tasks, err := c.api.ListTasks(ctx)
	if err != nil {
		if api.IsAuthFailure(err) {
			if clearErr := c.sessions.Clear(); clearErr != nil {
				return fmt.Errorf("%w (clearing session: %v)", ErrSessionExpired, clearErr)
			}
			return ErrSessionExpired
		}
		return fmt.Errorf("hydrate: %w", err)
	}

	completed, err := c.overlays.Load(c.sessions.Identity())
	if err != nil {
		return fmt.Errorf("hydrate: load overlay: %w", err)
	}

	c.tasks = tasks
	c.completed = completed
	return nil
}

// CreateTask creates a task and re-hydrates on success. A title that trims to
// empty is rejected locally. No optimistic insert: the cache only changes
// after the server confirmed.
func (c *Core) CreateTask(ctx context.Context, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if _, err := c.api.CreateTask(ctx, title); err != nil {
		return err
	}
	return c.Hydrate(ctx)
}

// UpdateTask replaces a task's title and re-hydrates on success. Title rules
// are the server's to enforce.
func (c *Core) UpdateTask(ctx context.Context, id int64, title string) error {
	if _, err := c.api.UpdateTask(ctx, id, title); err != nil {
		return err
	}
	return c.Hydrate(ctx)
}

// DeleteTask deletes a task remotely, then prunes it from the in-memory list
// and from the overlay, without a full re-fetch. The overlay is only written
// back when the deleted id was actually in it.
func (c *Core) DeleteTask(ctx context.Context, id int64) error {
	if err := c.api.DeleteTask(ctx, id); err != nil {
		return err
	}

	for i, t := range c.tasks {
		if t.ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			break
		}
	}

	if err := c.ensureOverlay(); err != nil {
		return err
	}
	if c.completed.Contains(id) {
		c.completed.Toggle(id)
		if err := c.overlays.Save(c.sessions.Identity(), c.completed); err != nil {
			return fmt.Errorf("delete task: save overlay: %w", err)
		}
	}
	return nil
}

// ToggleComplete flips the completion flag for id and persists the overlay
// immediately. Purely local; the API is never contacted.
func (c *Core) ToggleComplete(id int64) error {
	if err := c.ensureOverlay(); err != nil {
		return err
	}
	c.completed.Toggle(id)
	return c.overlays.Save(c.sessions.Identity(), c.completed)
}

// Completed reports whether id is marked done in the overlay.
func (c *Core) Completed(id int64) bool {
	return c.completed.Contains(id)
}

// Tasks returns the cached task list in fetch order.
func (c *Core) Tasks() []task.Task {
	out := make([]task.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// DerivedOrder returns the display sequence: all tasks not in the overlay in
// fetch order, then all completed tasks in fetch order. A stable partition,
// not a resort.
func (c *Core) DerivedOrder() []task.Task {
	out := make([]task.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if !c.completed.Contains(t.ID) {
			out = append(out, t)
		}
	}
	for _, t := range c.tasks {
		if c.completed.Contains(t.ID) {
			out = append(out, t)
		}
	}
	return out
}

// ensureOverlay loads the overlay if no hydrate has run yet, so purely local
// operations like toggle work without a remote round-trip.
func (c *Core) ensureOverlay() error {
	if c.completed != nil {
		return nil
	}
	completed, err := c.overlays.Load(c.sessions.Identity())
	if err != nil {
		return fmt.Errorf("load overlay: %w", err)
	}
	c.completed = completed
	return nil
}
