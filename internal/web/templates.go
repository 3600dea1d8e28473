package web

import (
	"embed"
	"html/template"
)

//go:embed templates
var templateFiles embed.FS

// Templates builds one isolated template set per page, each sharing the
// layout.
func Templates() map[string]*template.Template {
	names := []string{"page.html", "edit.html", "login.html", "signup.html"}

	sets := make(map[string]*template.Template, len(names))
	for _, name := range names {
		sets[name] = template.Must(template.ParseFS(templateFiles,
			"templates/layout.html",
			"templates/"+name,
		))
	}
	return sets
}
