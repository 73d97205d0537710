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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskpad help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc core.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskpad                                       List tasks, open first
  taskpad list [common flags]                   List tasks, open first
  taskpad add [common flags] <title...>         Create a task
  taskpad edit [common flags] <id> <title...>   Change a task's title
  taskpad rm [common flags] <id>                Delete a task
  taskpad done [common flags] <id>              Toggle a task's completion flag
  taskpad register [common flags] [--password <pw>] <email>
  taskpad login [common flags] [--password <pw>] <email>
  taskpad logout [common flags]
  taskpad whoami [common flags]
  taskpad help
  taskpad version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TASKPAD_API_URL  Task API base URL (default http://localhost:5000/api);
                   also read from .env in the config directory
`
