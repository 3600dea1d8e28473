package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// StaticFileServer serves the embedded stylesheet and other static assets.
// The handler expects the /static/ prefix to be stripped by the router.
func StaticFileServer() http.Handler {
	fsys, _ := fs.Sub(staticFiles, "static")
	return http.FileServer(http.FS(fsys))
}
