package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/atcdesk/pkg/core"
)

// fail maps desk errors to HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrUnknownList), errors.Is(err, core.ErrInvalidSquawk), errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrReadOnly):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrNotConfigured):
		status = http.StatusNotImplemented
	case errors.Is(err, core.ErrUnauthenticated):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}

var errBadRequest = errors.New("bad request")

func listAndPos(r *http.Request) (core.ListID, int, error) {
	id, err := core.ParseListID(r.PathValue("list"))
	if err != nil {
		return "", 0, err
	}
	raw := r.PathValue("pos")
	if raw == "" {
		return id, 0, nil
	}
	pos, err := strconv.Atoi(raw)
	if err != nil {
		return "", 0, fmt.Errorf("%w: position %q", errBadRequest, raw)
	}
	return id, pos, nil
}

func (s *Server) handleNoteAdd(w http.ResponseWriter, r *http.Request) {
	id, _, err := listAndPos(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if _, err := s.desk.Notes.Add(r.Context(), id, r.FormValue("text")); err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

func (s *Server) handleNoteDelete(w http.ResponseWriter, r *http.Request) {
	id, pos, err := listAndPos(r)
	if err == nil {
		_, err = s.desk.Notes.Remove(r.Context(), id, pos)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

func (s *Server) handleNoteEdit(w http.ResponseWriter, r *http.Request) {
	id, pos, err := listAndPos(r)
	if err == nil {
		_, err = s.desk.Notes.BeginEdit(r.Context(), id, pos)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

func (s *Server) handleNoteSave(w http.ResponseWriter, r *http.Request) {
	id, pos, err := listAndPos(r)
	if err == nil {
		_, err = s.desk.Notes.CommitEdit(r.Context(), id, pos, r.FormValue("text"))
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

func (s *Server) handleNoteCancel(w http.ResponseWriter, r *http.Request) {
	id, pos, err := listAndPos(r)
	if err == nil {
		_, err = s.desk.Notes.CancelEdit(r.Context(), id, pos)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

// planFromForm reads a flight plan from form or JSON field names.
func planFromForm(get func(string) string) (core.FlightPlan, error) {
	plan := core.FlightPlan{
		Callsign:      strings.ToUpper(strings.TrimSpace(get("callsign"))),
		Departure:     strings.ToUpper(strings.TrimSpace(get("departure"))),
		Arrival:       strings.ToUpper(strings.TrimSpace(get("arrival"))),
		Aircraft:      strings.TrimSpace(get("aircraft")),
		FlightRule:    strings.TrimSpace(get("flightRule")),
		SID:           strings.TrimSpace(get("sid")),
		CruisingLevel: strings.TrimSpace(get("cruisingLevel")),
	}
	if sq := get("squawk"); strings.TrimSpace(sq) != "" {
		code, err := core.ParseSquawk(sq)
		if err != nil {
			return core.FlightPlan{}, err
		}
		plan.Squawk = code
	}
	return plan, nil
}

func (s *Server) handlePlanSave(w http.ResponseWriter, r *http.Request) {
	plan, err := planFromForm(r.FormValue)
	if err == nil {
		_, err = s.desk.Plans.Save(r.Context(), plan)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

// handlePlanFetch shows the remote set. A failed fetch leaves the page as
// it was and says so in a flash message.
func (s *Server) handlePlanFetch(w http.ResponseWriter, r *http.Request) {
	if _, err := s.desk.Plans.FetchRemote(r.Context()); err != nil {
		s.page.Alert(fmt.Sprintf("Error fetching flight plans: %v", err))
	}
	s.back(w, r)
}

func (s *Server) handlePlanLocal(w http.ResponseWriter, r *http.Request) {
	if err := s.desk.Plans.RenderLocal(r.Context()); err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

func (s *Server) handleChartSelect(w http.ResponseWriter, r *http.Request) {
	if err := s.desk.Chart.Select(r.Context(), r.FormValue("chart")); err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

func (s *Server) chartAction(action string) error {
	switch action {
	case "zoom-in":
		s.desk.Chart.ZoomIn()
	case "zoom-out":
		s.desk.Chart.ZoomOut()
	case "reset":
		s.desk.Chart.Reset()
	case "fullscreen":
		return s.desk.Chart.ToggleFullscreen()
	default:
		return fmt.Errorf("%w: unknown chart action %q", errBadRequest, action)
	}
	return nil
}

func (s *Server) handleChartAction(w http.ResponseWriter, r *http.Request) {
	if err := s.chartAction(r.PathValue("action")); err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	if err := s.desk.Frequency.Select(r.Context(), r.FormValue("frequency")); err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

func (s *Server) copy(what string) error {
	switch what {
	case "server":
		return s.desk.Copier.CopyServer()
	case "password":
		return s.desk.Copier.CopyPassword()
	case "atis":
		return s.desk.Copier.CopyATIS()
	}
	return fmt.Errorf("%w: nothing to copy for %q", errBadRequest, what)
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	// The copier already alerted on failure.
	if err := s.copy(r.PathValue("what")); err != nil && errors.Is(err, errBadRequest) {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.desk.Session.Clear(r.Context()); err != nil {
		s.fail(w, err)
		return
	}
	if url := s.desk.Session.LoginURL(); url != "" {
		http.Redirect(w, r, url, http.StatusSeeOther)
		return
	}
	s.back(w, r)
}
