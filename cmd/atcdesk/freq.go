package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFreqCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "freq",
		Aliases: []string{"frequency"},
		Short:   "Show or set the working frequency",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the selected frequency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			f, err := d.Frequency.Current(cmd.Context())
			if err != nil {
				return err
			}
			if f == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No frequency selected.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), f)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <frequency>",
		Short: "Select a frequency by value or configured label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := args[0]
			for _, c := range a.cfg.Web.Frequencies {
				if c.Label == value {
					value = c.Value
					break
				}
			}
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			if err := d.Frequency.Select(cmd.Context(), value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Frequency set to %s.\n", value)
			return nil
		},
	}

	cmd.AddCommand(showCmd, setCmd)
	return cmd
}
