package adapthttp

import (
	"net/http"

	"bodytrack/internal/app"
)

// Server is the driving HTTP adapter that routes requests to the session
// controller.
type Server struct {
	session *app.Session
	webDir  string
}

// New creates a Server wired to the given session.
func New(session *app.Session, webDir string) *Server {
	return &Server{session: session, webDir: webDir}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/participants", s.handleParticipants)
	api.HandleFunc("/profile", s.handleProfile)
	api.HandleFunc("/profile/deselect", s.handleDeselect)

	api.HandleFunc("/dashboard", s.handleDashboard)
	api.HandleFunc("/entries", s.handleEntries)
	api.HandleFunc("/reset", s.handleReset)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
