package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aretw0/atcdesk/pkg/core"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

type textBody struct {
	Text string `json:"text"`
}

type changedBody struct {
	Changed bool     `json:"changed"`
	Notes   []string `json:"notes"`
}

// StateResponse is returned by GET /api/state.
type StateResponse struct {
	View  View `json:"view"`
	Desk  any  `json:"desk"`
	Pages int  `json:"pages"`
}

func (s *Server) apiState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StateResponse{
		View:  s.page.snapshot(false),
		Desk:  s.desk.State(),
		Pages: s.hub.count(),
	})
}

func (s *Server) apiNotes(w http.ResponseWriter, r *http.Request) {
	id, _, err := listAndPos(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	notes, err := s.desk.Notes.List(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) noteResult(w http.ResponseWriter, r *http.Request, id core.ListID, changed bool) {
	notes, err := s.desk.Notes.List(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, changedBody{Changed: changed, Notes: notes})
}

func (s *Server) apiNoteAdd(w http.ResponseWriter, r *http.Request) {
	id, _, err := listAndPos(r)
	var body textBody
	if err == nil {
		err = decodeBody(r, &body)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	added, err := s.desk.Notes.Add(r.Context(), id, body.Text)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.noteResult(w, r, id, added)
}

func (s *Server) apiNoteUpdate(w http.ResponseWriter, r *http.Request) {
	id, pos, err := listAndPos(r)
	var body textBody
	if err == nil {
		err = decodeBody(r, &body)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	changed, err := s.desk.Notes.CommitEdit(r.Context(), id, pos, body.Text)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.noteResult(w, r, id, changed)
}

func (s *Server) apiNoteDelete(w http.ResponseWriter, r *http.Request) {
	id, pos, err := listAndPos(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	removed, err := s.desk.Notes.Remove(r.Context(), id, pos)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.noteResult(w, r, id, removed)
}

func (s *Server) apiPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.desk.Plans.Local(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) apiPlanSave(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	if err := decodeBody(r, &body); err != nil {
		s.fail(w, err)
		return
	}
	plan, err := planFromForm(func(k string) string { return body[k] })
	if err == nil {
		plan, err = s.desk.Plans.Save(r.Context(), plan)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// apiPlanFetch passes the upstream status through as 502 with a body the
// caller can use to decide on a retry.
func (s *Server) apiPlanFetch(w http.ResponseWriter, r *http.Request) {
	plans, err := s.desk.Plans.FetchRemote(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) apiChart(w http.ResponseWriter, r *http.Request) {
	src, err := s.desk.Chart.Selected(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	v := s.desk.Chart.View()
	x, y := v.Offset()
	writeJSON(w, http.StatusOK, map[string]any{
		"chart":     src,
		"zoom":      v.Zoom(),
		"offset_x":  x,
		"offset_y":  y,
		"transform": v.Transform(),
	})
}

func (s *Server) apiChartSelect(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Chart string `json:"chart"`
	}
	err := decodeBody(r, &body)
	if err == nil {
		err = s.desk.Chart.Select(r.Context(), body.Chart)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.apiChart(w, r)
}

func (s *Server) apiChartAction(w http.ResponseWriter, r *http.Request) {
	if err := s.chartAction(r.PathValue("action")); err != nil {
		s.fail(w, err)
		return
	}
	s.apiChart(w, r)
}

func (s *Server) apiFrequency(w http.ResponseWriter, r *http.Request) {
	f, err := s.desk.Frequency.Current(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"frequency": f})
}

func (s *Server) apiFrequencySet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Frequency string `json:"frequency"`
	}
	err := decodeBody(r, &body)
	if err == nil {
		err = s.desk.Frequency.Select(r.Context(), body.Frequency)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.apiFrequency(w, r)
}

func (s *Server) apiCopy(w http.ResponseWriter, r *http.Request) {
	if err := s.copy(r.PathValue("what")); err != nil {
		s.fail(w, err)
		return
	}
	v := s.page.snapshot(true)
	writeJSON(w, http.StatusOK, map[string]any{"text": v.Clipboard, "alerts": v.Flash})
}
