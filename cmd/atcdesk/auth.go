package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/atcdesk/pkg/core"
)

var errAuthNotConfigured = errors.New("authentication is not configured (set remote.auth_url and remote.login_url)")

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the session token",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the stored token; opens the login page when it is rejected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			err = d.Session.Check(cmd.Context())
			if errors.Is(err, core.ErrNotConfigured) {
				return errAuthNotConfigured
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session is valid.")
			return nil
		},
	}

	var token string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store a token, or open the login page to get one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := a.bindings(cmd.OutOrStdout())
			d, err := a.openDesk(b, nil)
			if err != nil {
				return err
			}
			if token == "" {
				url := d.Session.LoginURL()
				if url == "" {
					return errAuthNotConfigured
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\nRun \"atcdesk auth login --token <token>\" with the token it gives you.\n", url)
				return b.Navigator.Redirect(url)
			}
			if err := d.Session.SetToken(cmd.Context(), token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token stored.")
			return nil
		},
	}
	loginCmd.Flags().StringVar(&token, "token", "", "Token handed out by the login page")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			if err := d.Session.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}

	cmd.AddCommand(checkCmd, loginCmd, logoutCmd)
	return cmd
}
