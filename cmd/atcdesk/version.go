package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/atcdesk"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of atcdesk",
		// No config or store is needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "atcdesk version %s\n", strings.TrimSpace(atcdesk.Version))
		},
	}
}
