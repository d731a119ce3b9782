package adapthttp

import (
	"errors"
	"net/http"

	"bodytrack/internal/app"
	"bodytrack/internal/domain"
)

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var body domain.Metrics
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		entry, err := s.session.AddEntry(r.Context(), body)
		switch {
		case errors.Is(err, app.ErrInvalidWeight):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, app.ErrNoActiveParticipant), errors.Is(err, app.ErrChallengeComplete):
			writeError(w, http.StatusConflict, err)
		case err != nil:
			writeError(w, http.StatusInternalServerError, err)
		default:
			writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
		}

	case http.MethodDelete:
		id, err := idQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.session.DeleteEntry(r.Context(), id)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deletedId": id})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Confirm bool `json:"confirm"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.session.ResetAll(r.Context(), body.Confirm); err != nil {
		if errors.Is(err, app.ErrResetNotConfirmed) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
