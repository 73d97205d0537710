// Package api implements the thin HTTP client for the remote task API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"taskpad/internal/config"
	"taskpad/internal/task"
)

// APITimeout is the timeout for API calls.
const APITimeout = 5 * time.Second

// Client talks to the remote task API. Authenticated calls carry the bearer
// token through an oauth2 transport; register and login go out bare.
type Client struct {
	baseURL string
	http    *http.Client
	plain   *http.Client
	debug   bool
}

// New creates a client. token may be empty, in which case only Register and
// Login are usable.
func New(ctx context.Context, cfg *config.Config, token string) *Client {
	c := &Client{
		baseURL: cfg.APIURL,
		plain:   &http.Client{},
		debug:   cfg.Debug,
	}
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		c.http = oauth2.NewClient(ctx, src)
	} else {
		c.http = c.plain
	}
	return c
}

// Register creates an account. The server decides password rules.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, c.plain, http.MethodPost, "/auth/register", body, nil, "register", "registration failed")
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, c.plain, http.MethodPost, "/auth/login", body, &out, "login", "login failed"); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: server returned no token")
	}
	return out.Token, nil
}

// ListTasks returns the authoritative task list in server order.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var out []task.Task
	if err := c.do(ctx, c.http, http.MethodGet, "/tasks", nil, &out, "list tasks", "failed to fetch tasks"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a task with the given title.
func (c *Client) CreateTask(ctx context.Context, title string) (task.Task, error) {
	body := map[string]string{"title": title}
	var out task.Task
	if err := c.do(ctx, c.http, http.MethodPost, "/tasks", body, &out, "create task", "failed to create task"); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

// UpdateTask replaces the title of an existing task.
func (c *Client) UpdateTask(ctx context.Context, id int64, title string) (task.Task, error) {
	body := map[string]string{"title": title}
	var out task.Task
	path := fmt.Sprintf("/tasks/%d", id)
	if err := c.do(ctx, c.http, http.MethodPut, path, body, &out, "update task", "failed to update task"); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

// DeleteTask deletes a task. Success responses carry no body.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/tasks/%d", id)
	return c.do(ctx, c.http, http.MethodDelete, path, nil, nil, "delete task", "failed to delete task")
}

// do performs a single request. One attempt, no retries; the caller decides
// how to react to failure.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, body, out any, op, genericMsg string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.debug {
		slog.Debug("api request", "method", method, "path", path)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if c.debug {
		slog.Debug("api response", "method", method, "path", path, "status", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Op: op, Status: resp.StatusCode, Message: errorMessage(resp.Body, genericMsg)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

// errorMessage extracts the server's {message} from an error body, falling
// back to the generic per-operation message.
func errorMessage(r io.Reader, generic string) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return generic
}
