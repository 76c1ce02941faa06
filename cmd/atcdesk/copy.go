package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/atcdesk/pkg/adapters/desktop"
)

// stdoutClipboard prints instead of copying, for pipes and headless hosts.
type stdoutClipboard struct {
	w io.Writer
}

func (c stdoutClipboard) WriteText(text string) error {
	_, err := fmt.Fprintln(c.w, text)
	return err
}

func newCopyCmd(a *app) *cobra.Command {
	var toStdout bool
	cmd := &cobra.Command{
		Use:       "copy <server|password|atis>",
		Short:     "Copy the server code, password or ATIS to the clipboard",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"server", "password", "atis"},
		RunE: func(cmd *cobra.Command, args []string) error {
			b := a.bindings(cmd.OutOrStdout())
			if toStdout {
				b.Clipboard = stdoutClipboard{cmd.OutOrStdout()}
				b.Notifier = desktop.NewPrinter(cmd.ErrOrStderr())
			}
			d, err := a.openDesk(b, nil)
			if err != nil {
				return err
			}
			switch args[0] {
			case "server":
				return d.Copier.CopyServer()
			case "password":
				return d.Copier.CopyPassword()
			default:
				return d.Copier.CopyATIS()
			}
		},
	}
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the text instead of copying it")
	return cmd
}
