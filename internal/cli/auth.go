package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"librio/internal/api"
	"librio/internal/gate"
)

func (c *CLI) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Log in and start a session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var username string
			if len(args) == 1 {
				username = strings.TrimSpace(args[0])
			} else {
				var err error
				username, err = promptLine("Username: ")
				if err != nil {
					return err
				}
			}
			if username == "" {
				return errors.New("username is required")
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			identity, token, err := c.api.Login(username, password)
			if err != nil {
				return c.describe(err)
			}
			if err := c.sessions.Establish(identity, token); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Logged in as %s (%s)\n", identity.Username, identity.Role)
			return nil
		},
	}
}

func (c *CLI) registerCmd() *cobra.Command {
	var email, studentCode, phone, address string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return errors.New("username is required")
			}
			if !strings.Contains(email, "@") {
				return errors.New("a valid email is required (--email)")
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			if len(password) < 6 {
				return errors.New("password must be at least 6 characters")
			}
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			identity, token, err := c.api.Register(api.RegisterRequest{
				Username:    username,
				Email:       email,
				Password:    password,
				StudentCode: studentCode,
				Phone:       phone,
				Address:     address,
			})
			if err != nil {
				return c.describe(err)
			}
			if err := c.sessions.Establish(identity, token); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Registered and logged in as %s (%s)\n", identity.Username, identity.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&studentCode, "student-code", "", "student code")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	return cmd
}

func (c *CLI) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, active := c.sessions.Current(); !active {
				fmt.Fprintln(c.out, "No active session.")
				return nil
			}
			if err := c.sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Logged out.")
			return nil
		},
	}
}

func (c *CLI) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current profile",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteProfile, func(cmd *cobra.Command, args []string) error {
			me, err := c.api.Me()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s <%s> role=%s\n", me.Username, me.Email, me.Role)
			if me.StudentCode != "" {
				fmt.Fprintf(c.out, "student code: %s\n", me.StudentCode)
			}
			if exp, ok := c.sessions.Expiry(); ok {
				fmt.Fprintf(c.out, "session expires: %s\n", exp.Local().Format("2006-01-02 15:04"))
			}
			return nil
		}),
	}
}

func (c *CLI) profileUpdateCmd() *cobra.Command {
	var update api.ProfileUpdate
	cmd := &cobra.Command{
		Use:   "update-profile",
		Short: "Update your contact details",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteProfile, func(cmd *cobra.Command, args []string) error {
			if update.Email == "" && update.Phone == "" && update.Address == "" {
				return errors.New("nothing to update; pass --email, --phone, or --address")
			}
			if update.Email != "" && !strings.Contains(update.Email, "@") {
				return errors.New("a valid email is required")
			}
			me, err := c.api.UpdateMe(update)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Profile updated: %s <%s>\n", me.Username, me.Email)
			return nil
		}),
	}
	cmd.Flags().StringVar(&update.Email, "email", "", "new email address")
	cmd.Flags().StringVar(&update.Phone, "phone", "", "new phone number")
	cmd.Flags().StringVar(&update.Address, "address", "", "new postal address")
	return cmd
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// readPassword reads a password with echo disabled.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
