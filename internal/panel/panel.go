package panel

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
)

//go:embed web/*
var content embed.FS

// indexFile is the editor page served at the root.
const indexFile = "index.html"

// Handler returns an http.Handler that serves the editor.
//
// When dir names an existing directory, files are served from it;
// otherwise the embedded copy is used. The root path serves index.html.
// Unknown paths are 404: the editor has no client-side routes.
// Panics if the embedded assets cannot be loaded (build error).
func Handler(dir string) http.Handler {
	fsys := assets(dir)
	fileServer := http.FileServer(http.FS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		// The page is small and changes with every release.
		w.Header().Set("Cache-Control", "no-cache, must-revalidate")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		name := path.Clean(r.URL.Path)
		if name == "/" || name == "." {
			serveIndex(w, r, fsys)
			return
		}

		if _, err := fs.Stat(fsys, name[1:]); err != nil {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

// assets picks the directory override or the embedded files.
func assets(dir string) fs.FS {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir)
		}
	}

	webFS, err := fs.Sub(content, "web")
	if err != nil {
		panic(fmt.Sprintf("panel: failed to load embedded web assets: %v", err))
	}
	return webFS
}

// serveIndex writes index.html directly; http.FileServer would redirect
// "/index.html" requests back to "/".
func serveIndex(w http.ResponseWriter, r *http.Request, fsys fs.FS) {
	data, err := fs.ReadFile(fsys, indexFile)
	if err != nil {
		http.Error(w, "editor page missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	w.Write(data) //nolint:errcheck // best-effort write to response
}
