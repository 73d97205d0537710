// Package task defines the task record shared across the client.
package task

// Task is a server-owned record. The authoritative copy lives behind the
// remote API; the client only ever holds a transient ordered cache of these,
// replaced wholesale after every mutation.
type Task struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
