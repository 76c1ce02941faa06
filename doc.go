// Package atcdesk is the composition root of the ATC information desk.
//
// It wires the desk components in pkg/desk to a store adapter (filesystem,
// bbolt or memory) and to the optional remote flight plan sheet, auth
// service and MQTT publisher. Hosts supply the rendering surfaces through
// core.Bindings; cmd/atcdesk and pkg/web are the two hosts shipped here.
//
// Usage:
//
//	d, err := atcdesk.New("./data", bindings,
//		atcdesk.WithRemoteURL(sheetURL),
//		atcdesk.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	if err := d.Load(ctx); err != nil {
//		logger.Warn("partial load", "error", err)
//	}
//	_, err = d.Notes.Add(ctx, core.NotesList1, "EZY12 hold short C")
package atcdesk
