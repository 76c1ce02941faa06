package main

import (
	"fmt"
	"io"

	"github.com/aretw0/atcdesk/pkg/core"
)

// terminal renders note lists and plan cards as text.
type terminal struct {
	w io.Writer
}

func (t terminal) RenderNotes(id core.ListID, view core.NoteListView) {
	fmt.Fprintf(t.w, "%s\n", id)
	if view.Placeholder != "" {
		fmt.Fprintf(t.w, "  %s\n", view.Placeholder)
		return
	}
	for _, item := range view.Items {
		fmt.Fprintf(t.w, "  %d. %s\n", item.Position, item.Text)
	}
}

func (terminal) ClearInput(core.ListID) {}

func (t terminal) RenderPlans(view core.PlanListView) {
	if view.Placeholder != "" {
		fmt.Fprintln(t.w, view.Placeholder)
		return
	}
	for i, card := range view.Cards {
		if i > 0 {
			fmt.Fprintln(t.w)
		}
		fmt.Fprintln(t.w, card.Title)
		for _, f := range card.Fields {
			fmt.Fprintf(t.w, "  %-17s %s\n", f.Label+":", f.Value)
		}
	}
}

var (
	_ core.NoteSurface = terminal{}
	_ core.PlanSurface = terminal{}
)
