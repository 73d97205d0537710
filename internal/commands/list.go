package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/core"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpad` (no args) and `taskpad list`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks, open first" }
func (c *ListCmd) Usage() string     { return "taskpad list [common flags]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc core.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 0 {
		fmt.Fprintln(errOut, "error: list takes no arguments")
		return exitcode.UserError
	}

	if err := svc.Hydrate(ctx); err != nil {
		return fail(errOut, err)
	}

	ordered := svc.DerivedOrder()
	if len(ordered) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	completed := 0
	for _, t := range ordered {
		done := svc.Completed(t.ID)
		if done {
			completed++
		}
		output.FormatTask(out, t, done)
	}

	if !cfg.Quiet {
		output.FormatSummary(out, len(ordered), completed)
	}
	return exitcode.Success
}
