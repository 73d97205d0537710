package commands_test

import (
	"bytes"
	"context"
	"testing"

	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/core"
	"taskpad/internal/exitcode"
	"taskpad/internal/overlay"
	"taskpad/internal/session"
	"taskpad/internal/testutil"
)

const testIdentity = "a@x.com"

// newServiceEnv builds a real core over a FakeAPI with a logged-in session
// in a temp config dir.
func newServiceEnv(t *testing.T) (core.Service, *testutil.FakeAPI, *config.Config) {
	t.Helper()

	cfg := &config.Config{Dir: t.TempDir()}
	sessions := session.NewStore(cfg)
	if err := sessions.Set("T1", testIdentity); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	fake := testutil.NewFakeAPI()
	return core.New(fake, sessions, overlay.NewStore(cfg)), fake, cfg
}

// runCommand is a helper to run a command against a service.
func runCommand(t *testing.T, cmd commands.Command, cfg *config.Config, svc core.Service, args []string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, cfg, nil, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskpad 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, cfg, nil, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !bytes.Contains([]byte(stdout), []byte("Usage:")) {
		t.Error("help output should contain 'Usage:'")
	}
}

// Tests for list command
func TestListCommand_OpenTasksFirst(t *testing.T) {
	svc, fake, cfg := newServiceEnv(t)
	milk := fake.AddTask("Buy milk")
	fake.AddTask("Pay rent")
	if err := overlay.NewStore(cfg).Save(testIdentity, overlay.Set{milk: true}); err != nil {
		t.Fatalf("failed to seed overlay: %v", err)
	}

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, cfg, svc, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_output", stdout)
}

func TestListCommand_Empty(t *testing.T) {
	svc, _, cfg := newServiceEnv(t)

	stdout, _, code := runCommand(t, &commands.ListCmd{}, cfg, svc, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found', got %q", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	svc, _, cfg := newServiceEnv(t)
	cfg.Quiet = true

	stdout, _, code := runCommand(t, &commands.ListCmd{}, cfg, svc, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}

func TestListCommand_SessionExpired(t *testing.T) {
	svc, fake, cfg := newServiceEnv(t)
	if err := overlay.NewStore(cfg).Save(testIdentity, overlay.Set{1: true}); err != nil {
		t.Fatalf("failed to seed overlay: %v", err)
	}
	fake.ListTasksErr = testutil.Unauthorized("list tasks")

	_, stderr, code := runCommand(t, &commands.ListCmd{}, cfg, svc, nil)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := "error: session expired (run: taskpad login)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}

	// Session cleared, overlay untouched.
	if tok := session.NewStore(cfg).Token(); tok != "" {
		t.Errorf("expected session cleared, still has token %q", tok)
	}
	set, err := overlay.NewStore(cfg).Load(testIdentity)
	if err != nil {
		t.Fatalf("failed to load overlay: %v", err)
	}
	if !set.Contains(1) {
		t.Error("overlay should survive a forced logout")
	}
}

func TestListCommand_TransientErrorKeepsSession(t *testing.T) {
	svc, fake, cfg := newServiceEnv(t)
	fake.ListTasksErr = testutil.ServerError("list tasks")

	_, stderr, code := runCommand(t, &commands.ListCmd{}, cfg, svc, nil)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr == "" {
		t.Error("expected an inline error message")
	}
	if tok := session.NewStore(cfg).Token(); tok != "T1" {
		t.Errorf("a transient failure must not log the user out, token %q", tok)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc, fake, cfg := newServiceEnv(t)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, cfg, svc, []string{"Buy", "milk"})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if fake.CreateCalls != 1 {
		t.Errorf("expected 1 create call, got %d", fake.CreateCalls)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Errorf("expected re-hydrated list with the new task, got %+v", tasks)
	}
}

func TestAddCommand_NoTitle(t *testing.T) {
	svc, fake, cfg := newServiceEnv(t)

	_, stderr, code := runCommand(t, &commands.AddCmd{}, cfg, svc, nil)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("expected title error, got %q", stderr)
	}
	if fake.CreateCalls != 0 {
		t.Error("no remote call expected for a missing title")
	}
}

func TestAddCommand_WhitespaceTitle(t *testing.T) {
	svc, fake, cfg := newServiceEnv(t)

	_, stderr, code := runCommand(t, &commands.AddCmd{}, cfg, svc, []string{"   "})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("expected title error, got %q", stderr)
	}
	if fake.CreateCalls != 0 {
		t.Error("no remote call expected for a whitespace title")
	}
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	svc, fake, cfg := newServiceEnv(t)
	fake.AddTask("old")

	stdout, _, code := runCommand(t, &commands.EditCmd{}, cfg, svc, []string{"1", "new", "title"})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "new title" {
		t.Errorf("expected updated task, got %+v", tasks)
	}
}

func TestEditCommand_MissingArgs(t *testing.T) {
	svc, _, cfg := newServiceEnv(t)

	_, stderr, code := runCommand(t, &commands.EditCmd{}, cfg, svc, nil)
	if code != exitcode.UserError || stderr != "error: task id required\n" {
		t.Errorf("expected task id error, got code %d stderr %q", code, stderr)
	}

	_, stderr, code = runCommand(t, &commands.EditCmd{}, cfg, svc, []string{"1"})
	if code != exitcode.UserError || stderr != "error: title required\n" {
		t.Errorf("expected title error, got code %d stderr %q", code, stderr)
	}

	_, stderr, code = runCommand(t, &commands.EditCmd{}, cfg, svc, []string{"abc", "x"})
	if code != exitcode.UserError || stderr != "error: invalid task id: abc\n" {
		t.Errorf("expected invalid id error, got code %d stderr %q", code, stderr)
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	svc, fake, cfg := newServiceEnv(t)
	id := fake.AddTask("doomed")
	if err := svc.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if err := svc.ToggleComplete(id); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	stdout, _, code := runCommand(t, &commands.RmCmd{}, cfg, svc, []string{"1"})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if len(svc.Tasks()) != 0 {
		t.Errorf("expected empty task list, got %+v", svc.Tasks())
	}
	set, err := overlay.NewStore(cfg).Load(testIdentity)
	if err != nil {
		t.Fatalf("failed to load overlay: %v", err)
	}
	if set.Contains(id) {
		t.Error("deleted task must be pruned from the overlay")
	}
}

func TestRmCommand_UnknownID(t *testing.T) {
	svc, _, cfg := newServiceEnv(t)

	_, stderr, code := runCommand(t, &commands.RmCmd{}, cfg, svc, []string{"99"})

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr == "" {
		t.Error("expected an inline error message")
	}
}

// Tests for done command
func TestDoneCommand_Toggles(t *testing.T) {
	svc, fake, cfg := newServiceEnv(t)
	id := fake.AddTask("a")

	stdout, _, code := runCommand(t, &commands.DoneCmd{}, cfg, svc, []string{"1"})
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "done\n" {
		t.Errorf("expected 'done', got %q", stdout)
	}
	if fake.ListCalls != 0 {
		t.Error("toggle must not contact the API")
	}

	stdout, _, code = runCommand(t, &commands.DoneCmd{}, cfg, svc, []string{"1"})
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "reopened\n" {
		t.Errorf("expected 'reopened', got %q", stdout)
	}

	set, err := overlay.NewStore(cfg).Load(testIdentity)
	if err != nil {
		t.Fatalf("failed to load overlay: %v", err)
	}
	if set.Contains(id) {
		t.Error("two toggles should leave the task open")
	}
}

func TestDoneCommand_BadArgs(t *testing.T) {
	svc, _, cfg := newServiceEnv(t)

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, cfg, svc, nil)
	if code != exitcode.UserError || stderr != "error: task id required\n" {
		t.Errorf("expected task id error, got code %d stderr %q", code, stderr)
	}

	_, stderr, code = runCommand(t, &commands.DoneCmd{}, cfg, svc, []string{"1", "2"})
	if code != exitcode.UserError || stderr != "error: done takes a single task id\n" {
		t.Errorf("expected single id error, got code %d stderr %q", code, stderr)
	}
}

// Tests for whoami command
func TestWhoamiCommand(t *testing.T) {
	_, _, cfg := newServiceEnv(t)

	stdout, _, code := runCommand(t, &commands.WhoamiCmd{}, cfg, nil, nil)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != testIdentity+"\n" {
		t.Errorf("expected identity, got %q", stdout)
	}
}

func TestWhoamiCommand_NotLoggedIn(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	stdout, _, code := runCommand(t, &commands.WhoamiCmd{}, cfg, nil, nil)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected 'not logged in', got %q", stdout)
	}
}
