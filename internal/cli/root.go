// Package cli is the view layer: each command is one of the screens the
// library system exposes, admission-checked by the gate before any call
// leaves the process.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"librio/internal/api"
	"librio/internal/config"
	"librio/internal/gate"
	"librio/internal/session"
	"librio/internal/util"
)

// CLI carries the wired collaborators. Everything is built once per
// invocation in init and threaded explicitly; nothing is reached through
// package globals.
type CLI struct {
	configPath string

	cfg      config.FileConfig
	sessions *session.Store
	gate     *gate.Gate
	api      *api.Client
	out      io.Writer
}

// New assembles the command tree.
func New() *cobra.Command {
	c := &CLI{out: os.Stdout}
	return c.root()
}

func (c *CLI) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "librio",
		Short:         "Terminal client for the library management server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config file")

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.profileUpdateCmd(),
		c.booksCmd(),
		c.catalogCmd(),
		c.borrowsCmd(),
		c.finesCmd(),
		c.manageCmd(),
		c.logsCmd(),
	)
	return root
}

func (c *CLI) init() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	util.InitLogger(cfg.LogLevel)

	sessions, err := session.NewStore(cfg.StateDir)
	if err != nil {
		return err
	}
	if err := sessions.Restore(); err != nil {
		return err
	}

	timeout, err := config.ParseHTTPTimeout(cfg.HTTPTimeout)
	if err != nil {
		return err
	}
	client, err := api.NewClient(api.Config{
		BaseURL: cfg.ServerURL,
		Tokens:  sessions,
		Timeout: timeout,
		OnUnauthorized: func() {
			// The one session-lifecycle listener: any 401 from any call
			// drops the active pair and its durable copy.
			_ = sessions.Clear()
		},
	})
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.sessions = sessions
	c.gate = gate.New(sessions)
	c.api = client
	return nil
}

// guarded wraps a command body with the gate check for its route and maps
// failures to user-facing messages.
func (c *CLI) guarded(route gate.Route, body func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := c.gate.Authorize(route); err != nil {
			return c.describe(err)
		}
		if err := body(cmd, args); err != nil {
			return c.describe(err)
		}
		return nil
	}
}

// describe translates internal errors into what the user should read.
func (c *CLI) describe(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gate.ErrNotAuthenticated):
		return errors.New("you are not logged in; run 'librio login'")
	case errors.Is(err, gate.ErrForbidden):
		return errors.New("your role may not open this view; try 'librio books list'")
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		// Server-reported failure, surfaced verbatim. For a rejected
		// credential the session listener has already cleared state and
		// the message tells the user to log back in.
		return errors.New(apiErr.Message)
	}
	if isTransport(err) {
		return errors.New("the library server could not be reached, please try again")
	}
	return err
}

func isTransport(err error) bool {
	var urlErr interface{ Timeout() bool }
	return errors.As(err, &urlErr)
}
