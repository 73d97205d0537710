package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"taskpad/internal/api"
	"taskpad/internal/config"
	"taskpad/internal/core"
	"taskpad/internal/exitcode"
	"taskpad/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	password string
	stdin    io.Reader
}

// SetStdin overrides the password input source (for testing).
func (c *LoginCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in to the task API" }
func (c *LoginCmd) Usage() string     { return "taskpad login [common flags] [--password <pw>] <email>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc core.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := strings.TrimSpace(args[0])
	if email == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	sessions := session.NewStore(cfg)

	// Skip the round-trip when the stored token is demonstrably still live.
	// Expiry without an exp claim is detected reactively on first use.
	if tok := sessions.Token(); tok != "" {
		if exp, ok := session.ExpiresAt(tok); ok && time.Now().Before(exp) {
			if !cfg.Quiet {
				fmt.Fprintln(out, "already logged in")
			}
			return exitcode.Success
		}
	}

	password, err := c.readPassword(errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	client := api.New(ctx, cfg, "")
	token, err := client.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		// Only rejected credentials are an auth failure; a 5xx or
		// unreachable server is a backend error like anywhere else.
		if api.IsAuthFailure(err) {
			return exitcode.AuthError
		}
		return exitcode.BackendError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	// Key local state by the server-issued account id when the token carries
	// one; the email is only a fallback.
	identity := session.IdentityFromToken(token, email)
	if err := sessions.Set(token, identity); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// readPassword takes the --password flag when given, otherwise reads one line
// from stdin.
func (c *LoginCmd) readPassword(errOut io.Writer) (string, error) {
	if c.password != "" {
		return c.password, nil
	}
	in := c.stdin
	if in == nil {
		in = os.Stdin
	}
	fmt.Fprint(errOut, "Password: ")
	return readLine(in)
}

// readLine reads a single newline-terminated line.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
