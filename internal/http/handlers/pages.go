package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/hongminglow/all-in-admin/internal/http/respond"
	"github.com/hongminglow/all-in-admin/internal/router"
)

// PageHandler serves the console shell for page routes that passed the
// navigation gate. With no static build configured it describes the matched
// route as JSON instead.
type PageHandler struct {
	staticDir string
}

// NewPageHandler constructs the handler. staticDir may be empty.
func NewPageHandler(staticDir string) *PageHandler {
	return &PageHandler{staticDir: staticDir}
}

// Assets serves the console's static build, or nil without one.
func (h *PageHandler) Assets() http.Handler {
	if h.staticDir == "" {
		return nil
	}
	return http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(h.staticDir, "assets"))))
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.staticDir != "" {
		index := filepath.Join(h.staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			w.Header().Set("Cache-Control", "no-store")
			http.ServeFile(w, r, index)
			return
		}
	}

	route, ok := router.RouteFrom(r.Context())
	if !ok || route.Component == "" {
		respond.Error(w, http.StatusNotFound, "page not found")
		return
	}
	respond.JSON(w, http.StatusOK, "page", route.View())
}
