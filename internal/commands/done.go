package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/core"
	"taskpad/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: it toggles the local completion flag.
// Completion never reaches the server, so this works offline too.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion flag" }
func (c *DoneCmd) Usage() string     { return "taskpad done [common flags] <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc core.Service, args []string, out, errOut io.Writer) int {
	id, rest, err := parseTaskID(args)
	if err != nil {
		if err == ErrTaskIDRequired {
			fmt.Fprintln(errOut, "error: task id required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}
	if len(rest) != 0 {
		fmt.Fprintln(errOut, "error: done takes a single task id")
		return exitcode.UserError
	}

	if err := svc.ToggleComplete(id); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		if svc.Completed(id) {
			fmt.Fprintln(out, "done")
		} else {
			fmt.Fprintln(out, "reopened")
		}
	}
	return exitcode.Success
}
