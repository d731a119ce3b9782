package adapthttp

import (
	"net/http"

	"bodytrack/internal/domain"
)

func (s *Server) handleParticipants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var active *string
	if p := s.session.Active(); p != nil {
		active = &p.Name
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"names":    s.session.Profiles().Names(),
		"profiles": s.session.Profiles().All(),
		"active":   active,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Name     string  `json:"name"`
		HeightCm float64 `json:"heightCm"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	profile, err := s.session.SelectOrCreate(r.Context(), domain.Profile{
		Name:     body.Name,
		HeightCm: body.HeightCm,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

func (s *Server) handleDeselect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.session.Deselect(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
