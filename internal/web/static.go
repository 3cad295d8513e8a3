package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	appLog "github.com/lucianorarrua/cosquin-rock-lineup/internal/log"
)

// embeddedStatic contains the exported static UI build. The directory
// under internal/web/static mirrors the bundler output and is embedded
// into the binary, so the service ships as a single file.
//
//go:embed all:static
var embeddedStatic embed.FS

// staticFileServer returns an http.Handler serving the embedded UI.
func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		appLog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "static UI not available", http.StatusServiceUnavailable)
		})
	}

	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// API paths never fall through to the static UI; a missing API
		// route should 404, not return HTML.
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
