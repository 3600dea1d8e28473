package web

import (
	"html/template"
	"net/http"

	"bramble/internal/page"
	"bramble/internal/session"
	"bramble/internal/user"
)

// Server holds the dependencies for the web server.
type Server struct {
	pages     *page.Service
	users     *user.Service
	sessions  *session.Manager
	templates map[string]*template.Template
}

// NewServer creates a new server with the given dependencies.
func NewServer(pages *page.Service, users *user.Service, sessions *session.Manager, templates map[string]*template.Template) *Server {
	return &Server{
		pages:     pages,
		users:     users,
		sessions:  sessions,
		templates: templates,
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}
