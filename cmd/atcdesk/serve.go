package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/atcdesk/internal/config"
	"github.com/aretw0/atcdesk/pkg/adapters/desktop"
	"github.com/aretw0/atcdesk/pkg/web"
)

// openDelay gives the listener time to come up before --open fires.
const openDelay = 300 * time.Millisecond

func newServeCmd(a *app) *cobra.Command {
	var (
		addr string
		open bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the desk page in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				addr = a.cfg.Web.Addr
			}
			publisher, err := a.publisher()
			if err != nil {
				return err
			}

			page := web.NewPage()
			d, err := a.openDesk(page.Bindings(), publisher)
			if err != nil {
				return err
			}
			srv, err := web.NewServer(d, page, web.Options{
				Addr:        addr,
				Title:       "ATC Desk " + a.cfg.Desk,
				Charts:      choices(a.cfg.Web.Charts),
				Frequencies: choices(a.cfg.Web.Frequencies),
				ChartsDir:   a.cfg.Web.ChartsDir,
				Logger:      a.logger,
			})
			if err != nil {
				return err
			}

			if open {
				url := fmt.Sprintf("http://%s/", addr)
				t := time.AfterFunc(openDelay, func() {
					if err := desktop.NewBrowser().Redirect(url); err != nil {
						a.logger.Warn("could not open browser", "error", err)
					}
				})
				defer t.Stop()
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides web.addr)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the page in the default browser")
	return cmd
}

func choices(in []config.Choice) []web.Choice {
	out := make([]web.Choice, len(in))
	for i, c := range in {
		out[i] = web.Choice{Label: c.Label, Value: c.Value}
	}
	return out
}
