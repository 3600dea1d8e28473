package web

import (
	"net/http"

	"bramble/internal/web/controller"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", StaticFileServer()))

	authController := controller.Auth{Users: s.users, Sessions: s.sessions, Templates: s.templates}
	authController.Register(mux)

	wikiController := controller.Wiki{Pages: s.pages, Templates: s.templates}
	wikiController.Register(mux, s.sessions.RequireLogin)

	return s.sessions.WithUser(mux)
}
