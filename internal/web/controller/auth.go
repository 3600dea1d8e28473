package controller

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"bramble/internal/session"
	"bramble/internal/user"
	"bramble/internal/web/viewmodels"
)

// Auth provides the login, signup and logout handlers.
type Auth struct {
	Users     *user.Service
	Sessions  *session.Manager
	Templates map[string]*template.Template
}

// Register registers the auth routes.
func (a *Auth) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /login", a.loginGet)
	mux.HandleFunc("POST /login", a.loginPost)
	mux.HandleFunc("GET /signup", a.signupGet)
	mux.HandleFunc("POST /signup", a.signupPost)
	mux.HandleFunc("GET /logout", a.logout)
}

func (a *Auth) loginGet(w http.ResponseWriter, r *http.Request) {
	username, _ := a.Sessions.FromRequest(r)
	a.render(w, "login.html", viewmodels.PageData{LoggedInUser: username})
}

func (a *Auth) loginPost(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	identity, err := a.Users.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, user.ErrIncorrectLogin) {
			w.WriteHeader(http.StatusUnauthorized)
			a.render(w, "login.html", viewmodels.PageData{Error: "Incorrect login", Username: username})
			return
		}
		log.Println(err)
		http.Error(w, "Internal Server Error", 500)
		return
	}

	cookie, err := a.Sessions.IssueCookie(identity)
	if err != nil {
		log.Println(err)
		http.Error(w, "Internal Server Error", 500)
		return
	}
	http.SetCookie(w, cookie)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (a *Auth) signupGet(w http.ResponseWriter, r *http.Request) {
	username, _ := a.Sessions.FromRequest(r)
	a.render(w, "signup.html", viewmodels.PageData{LoggedInUser: username})
}

func (a *Auth) signupPost(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")
	verify := r.FormValue("verify")

	account, err := a.Users.Create(r.Context(), username, email, password, verify)
	if err != nil {
		var verr *user.ValidationError
		if errors.As(err, &verr) {
			// Re-render the form with the failing field highlighted and the
			// harmless values kept.
			a.render(w, "signup.html", viewmodels.PageData{
				Error:      verr.Message,
				ErrorField: verr.Field,
				Username:   username,
				Email:      email,
			})
			return
		}
		log.Println(err)
		http.Error(w, "Internal Server Error", 500)
		return
	}

	cookie, err := a.Sessions.IssueCookie(account.Username)
	if err != nil {
		log.Println(err)
		http.Error(w, "Internal Server Error", 500)
		return
	}
	http.SetCookie(w, cookie)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (a *Auth) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, a.Sessions.ClearCookie())
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (a *Auth) render(w http.ResponseWriter, name string, data viewmodels.PageData) {
	if err := a.Templates[name].ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Println(err)
		if w.Header().Get("Content-Type") == "" {
			http.Error(w, "Internal Server Error", 500)
		}
	}
}
