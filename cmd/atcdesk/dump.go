package main

import (
	"github.com/goforj/godump"
	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	var withConfig bool
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump the desk state for debugging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			if err := d.Load(cmd.Context()); err != nil {
				a.logger.Warn("desk loaded with errors", "error", err)
			}
			if withConfig {
				godump.Fdump(cmd.OutOrStdout(), a.cfg)
			}
			godump.Fdump(cmd.OutOrStdout(), d.State())
			return nil
		},
	}
	cmd.Flags().BoolVar(&withConfig, "with-config", false, "Also dump the resolved configuration")
	return cmd
}
