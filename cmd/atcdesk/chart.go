package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/atcdesk/pkg/desk"
)

func newChartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Select the ground chart and preview its view",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the selected chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			src, err := d.Chart.Selected(cmd.Context())
			if err != nil {
				return err
			}
			if src == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No chart selected.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), src)
			return nil
		},
	}

	selectCmd := &cobra.Command{
		Use:   "select <chart>",
		Short: "Select a chart by image path or configured label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			for _, c := range a.cfg.Web.Charts {
				if c.Label == src {
					src = c.Value
					break
				}
			}
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			if err := d.Chart.Select(cmd.Context(), src); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Chart set to %s.\n", src)
			return nil
		},
	}

	zoomCmd := &cobra.Command{
		Use:       "zoom <in|out|reset>...",
		Short:     "Preview the chart transform after a sequence of zoom steps",
		Args:      cobra.MatchAll(cobra.MinimumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"in", "out", "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var v desk.ViewState
			for _, step := range args {
				switch step {
				case "in":
					v = v.ZoomIn()
				case "out":
					v = v.ZoomOut()
				case "reset":
					v = v.Reset()
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "zoom %s\ntransform %s\n", formatZoom(v.Zoom()), v.Transform())
			return nil
		},
	}

	cmd.AddCommand(showCmd, selectCmd, zoomCmd)
	return cmd
}

func formatZoom(z float64) string {
	return fmt.Sprintf("%.1fx", z)
}
