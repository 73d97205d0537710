package core

import (
	"context"

	"taskpad/internal/task"
)

// Service is the surface commands program against. *Core is the one real
// implementation; commands never import the API client directly.
type Service interface {
	// Hydrate fetches the task list and loads the overlay.
	Hydrate(ctx context.Context) error

	// CreateTask creates a task, rejecting blank titles locally.
	CreateTask(ctx context.Context, title string) error

	// UpdateTask replaces a task's title.
	UpdateTask(ctx context.Context, id int64, title string) error

	// DeleteTask deletes a task and prunes it from list and overlay.
	DeleteTask(ctx context.Context, id int64) error

	// ToggleComplete flips the local completion flag for a task.
	ToggleComplete(id int64) error

	// Completed reports whether a task is marked done.
	Completed(id int64) bool

	// Tasks returns the cached list in fetch order.
	Tasks() []task.Task

	// DerivedOrder returns open tasks then completed tasks, each in fetch order.
	DerivedOrder() []task.Task
}

var _ Service = (*Core)(nil)
