package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the whole command tree. Flags live on the returned app
// so each tree starts from clean state; the caller owns a.teardown.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "atcdesk",
		Short: "A desk for virtual air traffic controllers",
		Long: `atcdesk keeps a controller's working notes, flight plans, ground chart and
frequency in one place. Run "atcdesk serve" for the browser page or use the
subcommands to work from a terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	f.StringVarP(&a.cfgPath, "config", "c", "", "Config file (default: atcdesk.yaml, .toml or .json in the desk root)")
	f.StringVar(&a.dataPath, "data", "", "Data directory (overrides data.path)")
	f.StringVar(&a.adapter, "adapter", "", "Store adapter: fs, bolt or memory")
	f.BoolVar(&a.readOnly, "read-only", false, "Open the store read-only")
	f.BoolVar(&a.devSafety, "dev-safety", true, "Keep data in a temp sandbox under go run and go test")
	f.BoolVar(&a.guiAlerts, "gui-alerts", false, "Show alerts in a desktop dialog")

	root.AddCommand(
		newServeCmd(a),
		newNotesCmd(a),
		newPlansCmd(a),
		newChartCmd(a),
		newFreqCmd(a),
		newCopyCmd(a),
		newAuthCmd(a),
		newStoreCmd(a),
		newDumpCmd(a),
		newVersionCmd(),
	)
	return root, a
}
