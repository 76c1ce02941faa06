package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/atcdesk/pkg/core"
)

func newPlansCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Submit and review flight plans",
	}

	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the locally submitted flight plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			b := a.bindings(out)
			b.Plans = terminal{out}
			d, err := a.openDesk(b, nil)
			if err != nil {
				return err
			}
			if listJSON {
				plans, err := d.Plans.Local(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(out, plans)
			}
			return d.Plans.RenderLocal(cmd.Context())
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	var plan core.FlightPlan
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Submit a flight plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := plan
			p.Callsign = strings.ToUpper(strings.TrimSpace(p.Callsign))
			p.Departure = strings.ToUpper(strings.TrimSpace(p.Departure))
			p.Arrival = strings.ToUpper(strings.TrimSpace(p.Arrival))
			if p.Squawk != "" {
				code, err := core.ParseSquawk(p.Squawk)
				if err != nil {
					return fmt.Errorf("%w: %q", err, p.Squawk)
				}
				p.Squawk = code
			}

			publisher, err := a.publisher()
			if err != nil {
				return err
			}
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), publisher)
			if err != nil {
				return err
			}
			saved, err := d.Plans.Save(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Flight plan %s saved.\n", saved.Callsign)
			return nil
		},
	}
	f := saveCmd.Flags()
	f.StringVar(&plan.Callsign, "callsign", "", "Callsign")
	f.StringVar(&plan.Departure, "departure", "", "Departure aerodrome (ICAO)")
	f.StringVar(&plan.Arrival, "arrival", "", "Arrival aerodrome (ICAO)")
	f.StringVar(&plan.Aircraft, "aircraft", "", "Aircraft type")
	f.StringVar(&plan.FlightRule, "rule", "", "Flight rule type (IFR or VFR)")
	f.StringVar(&plan.SID, "sid", "", "Standard instrument departure")
	f.StringVar(&plan.CruisingLevel, "level", "", "Cruising level")
	f.StringVar(&plan.Squawk, "squawk", "", "Transponder code, four octal digits")
	_ = saveCmd.MarkFlagRequired("callsign")

	var fetchJSON bool
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Show the flight plans published on the remote sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			b := a.bindings(out)
			if !fetchJSON {
				b.Plans = terminal{out}
			}
			d, err := a.openDesk(b, nil)
			if err != nil {
				return err
			}
			plans, err := d.Plans.FetchRemote(cmd.Context())
			if err != nil {
				return fmt.Errorf("error fetching flight plans: %w", err)
			}
			if fetchJSON {
				return writeJSON(out, plans)
			}
			return nil
		},
	}
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Output in JSON format")

	cmd.AddCommand(listCmd, saveCmd, fetchCmd)
	return cmd
}
