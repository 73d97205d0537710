// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"sync"

	"taskpad/internal/api"
	"taskpad/internal/task"
)

// FakeAPI is an in-memory implementation of core.API for testing.
type FakeAPI struct {
	mu     sync.RWMutex
	tasks  []task.Task
	nextID int64

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// Call counters, for asserting that an operation stayed local
	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

// NewFakeAPI creates an empty FakeAPI.
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{nextID: 1}
}

// AddTask seeds a task and returns its id.
func (f *FakeAPI) AddTask(title string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, task.Task{ID: id, Title: title})
	return id
}

// NotFound builds the RemoteError the real API returns for a missing task.
func NotFound(op string) *api.RemoteError {
	return &api.RemoteError{Op: op, Status: http.StatusNotFound, Message: "task not found"}
}

// Unauthorized builds the RemoteError for a rejected token.
func Unauthorized(op string) *api.RemoteError {
	return &api.RemoteError{Op: op, Status: http.StatusUnauthorized, Message: "invalid token"}
}

// ServerError builds the RemoteError for a transient server failure.
func ServerError(op string) *api.RemoteError {
	return &api.RemoteError{Op: op, Status: http.StatusInternalServerError, Message: "internal server error"}
}

// ListTasks implements core.API.
func (f *FakeAPI) ListTasks(ctx context.Context) ([]task.Task, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements core.API.
func (f *FakeAPI) CreateTask(ctx context.Context, title string) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateTaskErr != nil {
		return task.Task{}, f.CreateTaskErr
	}
	t := task.Task{ID: f.nextID, Title: title}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements core.API.
func (f *FakeAPI) UpdateTask(ctx context.Context, id int64, title string) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateTaskErr != nil {
		return task.Task{}, f.UpdateTaskErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Title = title
			return f.tasks[i], nil
		}
	}
	return task.Task{}, NotFound("update task")
}

// DeleteTask implements core.API.
func (f *FakeAPI) DeleteTask(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return NotFound("delete task")
}
