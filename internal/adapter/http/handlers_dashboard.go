package adapthttp

import (
	"errors"
	"net/http"

	"bodytrack/internal/app"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view, err := s.session.Dashboard()
	if err != nil {
		if errors.Is(err, app.ErrNoActiveParticipant) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
