package controller

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/niklasfasching/go-org/org"

	"bramble/internal/page"
	"bramble/internal/session"
	"bramble/internal/store"
	"bramble/internal/web/renderer"
	"bramble/internal/web/viewmodels"
)

// pagePathRE accepts "/" and "/segment(/segment)*" wiki paths, with an
// optional trailing slash per segment.
var pagePathRE = regexp.MustCompile(`^(/(?:[a-zA-Z0-9_-]+/?)*)$`)

// Wiki provides the page view and edit handlers.
type Wiki struct {
	Pages     *page.Service
	Templates map[string]*template.Template
}

// Register registers the wiki routes. Editing requires a login; viewing does
// not, except for the front page which sends anonymous visitors to the login
// form.
func (wk *Wiki) Register(mux *http.ServeMux, requireLogin func(http.Handler) http.Handler) {
	mux.Handle("GET /_edit/{path...}", requireLogin(http.HandlerFunc(wk.edit)))
	mux.Handle("POST /_edit/{path...}", requireLogin(http.HandlerFunc(wk.save)))
	mux.HandleFunc("GET /{path...}", wk.view)
}

func (wk *Wiki) view(w http.ResponseWriter, r *http.Request) {
	path, ok := pagePath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	username := session.Username(r.Context())
	if path == "/" && username == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	p, err := wk.Pages.Get(r.Context(), path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, "/_edit"+path, http.StatusFound)
			return
		}
		log.Println(err)
		http.Error(w, "Internal Server Error", 500)
		return
	}

	htmlContent, err := org.New().Parse(strings.NewReader(p.Content), "").Write(renderer.HTMLWriter())
	if err != nil {
		log.Printf("Error rendering page content: %v", err)
		http.Error(w, "Internal Server Error", 500)
		return
	}

	data := viewmodels.PageData{
		LoggedInUser: username,
		Page:         p,
		Content:      template.HTML(htmlContent),
	}
	wk.render(w, "page.html", data)
}

func (wk *Wiki) edit(w http.ResponseWriter, r *http.Request) {
	path, ok := pagePath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	username := session.Username(r.Context())

	p, err := wk.Pages.Get(r.Context(), path)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Println(err)
			http.Error(w, "Internal Server Error", 500)
			return
		}
		// A fresh page: prefill the form with a stub attributed to the
		// current user.
		p = wk.Pages.Create(path, strings.TrimPrefix(path, "/"), "", username)
	}

	data := viewmodels.PageData{
		LoggedInUser: username,
		Page:         p,
		Content:      template.HTML(template.HTMLEscapeString(p.Content)),
	}
	wk.render(w, "edit.html", data)
}

func (wk *Wiki) save(w http.ResponseWriter, r *http.Request) {
	path, ok := pagePath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	subject := r.PostFormValue("subject")
	content := r.PostFormValue("content")

	editor := session.Username(r.Context())
	if _, err := wk.Pages.Save(r.Context(), path, subject, content, editor); err != nil {
		log.Printf("Error saving page %s: %v", path, err)
		http.Error(w, "Internal Server Error", 500)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (wk *Wiki) render(w http.ResponseWriter, name string, data viewmodels.PageData) {
	if err := wk.Templates[name].ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Println(err)
		if w.Header().Get("Content-Type") == "" {
			http.Error(w, "Internal Server Error", 500)
		}
	}
}

// pagePath extracts and validates the wiki path from the request. The path
// wildcard strips the leading slash, so it is restored here.
func pagePath(r *http.Request) (string, bool) {
	path := "/" + r.PathValue("path")
	if !pagePathRE.MatchString(path) {
		return "", false
	}
	return path, true
}
