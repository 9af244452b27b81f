package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"librio/internal/gate"
)

func (c *CLI) logsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Activity audit trail (admin)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List activity logs",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteActivityLogs, func(cmd *cobra.Command, args []string) error {
			logs, err := c.api.ActivityLogs()
			if err != nil {
				return err
			}
			c.renderLogs(logs)
			return nil
		}),
	}, &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search activity logs",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteActivityLogs, func(cmd *cobra.Command, args []string) error {
			logs, err := c.api.SearchActivityLogs(args[0])
			if err != nil {
				return err
			}
			c.renderLogs(logs)
			return nil
		}),
	}, &cobra.Command{
		Use:   "user <user-id>",
		Short: "List one user's activity",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteActivityLogs, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			logs, err := c.api.ActivityLogsByUser(id)
			if err != nil {
				return err
			}
			c.renderLogs(logs)
			return nil
		}),
	}, &cobra.Command{
		Use:   "delete <log-id>",
		Short: "Delete one log entry",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteActivityLogs, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.api.DeleteActivityLog(id); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Deleted log #%d.\n", id)
			return nil
		}),
	}, &cobra.Command{
		Use:   "clear",
		Short: "Delete the entire audit trail",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteActivityLogs, func(cmd *cobra.Command, args []string) error {
			confirm, err := promptLine("Delete ALL activity logs? Type 'yes' to confirm: ")
			if err != nil {
				return err
			}
			if confirm != "yes" {
				fmt.Fprintln(c.out, "Aborted.")
				return nil
			}
			if err := c.api.DeleteAllActivityLogs(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Audit trail cleared.")
			return nil
		}),
	})
	return cmd
}
