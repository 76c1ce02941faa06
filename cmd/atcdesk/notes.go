package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/atcdesk/pkg/core"
)

func newNotesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage the three note lists",
		Long:  `Lists are named notesList1..notesList3 or simply 1..3. Positions start at 0.`,
	}

	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list [list]",
		Short: "Show one note list, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := core.NoteLists
			if len(args) == 1 {
				id, err := core.ParseListID(args[0])
				if err != nil {
					return err
				}
				ids = []core.ListID{id}
			}

			out := cmd.OutOrStdout()
			b := a.bindings(out)
			b.Notes = terminal{out}
			d, err := a.openDesk(b, nil)
			if err != nil {
				return err
			}

			if listJSON {
				lists := make(map[core.ListID][]string, len(ids))
				for _, id := range ids {
					notes, err := d.Notes.List(cmd.Context(), id)
					if err != nil {
						return err
					}
					lists[id] = notes
				}
				return writeJSON(out, lists)
			}
			for _, id := range ids {
				if err := d.Notes.Render(cmd.Context(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	addCmd := &cobra.Command{
		Use:   "add <list> <text...>",
		Short: "Append a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseListID(args[0])
			if err != nil {
				return err
			}
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			added, err := d.Notes.Add(cmd.Context(), id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if !added {
				return errors.New("note is empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note added to %s.\n", id)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:     "rm <list> <position>",
		Aliases: []string{"delete"},
		Short:   "Remove a note",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, pos, err := parseNoteRef(args[0], args[1])
			if err != nil {
				return err
			}
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			removed, err := d.Notes.Remove(cmd.Context(), id, pos)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no note at position %d in %s", pos, id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note %d removed from %s.\n", pos, id)
			return nil
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit <list> <position> [text...]",
		Short: "Replace a note; empty text removes it",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, pos, err := parseNoteRef(args[0], args[1])
			if err != nil {
				return err
			}
			d, err := a.openDesk(a.bindings(cmd.OutOrStdout()), nil)
			if err != nil {
				return err
			}
			changed, err := d.Notes.CommitEdit(cmd.Context(), id, pos, strings.Join(args[2:], " "))
			if err != nil {
				return err
			}
			if !changed {
				return fmt.Errorf("no note at position %d in %s", pos, id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note %d of %s updated.\n", pos, id)
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, rmCmd, editCmd)
	return cmd
}

func parseNoteRef(list, position string) (core.ListID, int, error) {
	id, err := core.ParseListID(list)
	if err != nil {
		return "", 0, err
	}
	pos, err := strconv.Atoi(position)
	if err != nil {
		return "", 0, fmt.Errorf("invalid position %q", position)
	}
	return id, pos, nil
}
