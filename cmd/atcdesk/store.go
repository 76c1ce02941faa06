package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the key-value store",
	}

	var keysJSON bool
	keysCmd := &cobra.Command{
		Use:   "keys [pattern]",
		Short: "List stored keys, optionally filtered by a glob such as \"notesList*\"",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := "*"
			if len(args) == 1 {
				pattern = args[0]
			}
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
			}
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			keys, err := d.Store().Keys(cmd.Context())
			if err != nil {
				return err
			}

			matched := make([]string, 0, len(keys))
			for _, k := range keys {
				if ok, _ := doublestar.Match(pattern, k); ok {
					matched = append(matched, k)
				}
			}
			if keysJSON {
				return writeJSON(cmd.OutOrStdout(), matched)
			}
			for _, k := range matched {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
	keysCmd.Flags().BoolVar(&keysJSON, "json", false, "Output in JSON format")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the raw value stored under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			v, ok, err := d.Store().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("key %q not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	cmd.AddCommand(keysCmd, getCmd)
	return cmd
}
