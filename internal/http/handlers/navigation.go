package handlers

import (
	"net/http"
	"strings"

	"github.com/hongminglow/all-in-admin/internal/auth"
	"github.com/hongminglow/all-in-admin/internal/http/respond"
	"github.com/hongminglow/all-in-admin/internal/models/dto"
	"github.com/hongminglow/all-in-admin/internal/router"
)

// NavigationHandler exposes the navigation guard to the console front end.
type NavigationHandler struct {
	guard *router.Guard
}

// NewNavigationHandler constructs the handler.
func NewNavigationHandler(guard *router.Guard) *NavigationHandler {
	return &NavigationHandler{guard: guard}
}

// Register attaches navigation routes to the mux.
func (h *NavigationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/navigation", h.handleDecide)
	mux.HandleFunc("GET /api/navigation/routes", h.handleRoutes)
}

func (h *NavigationHandler) handleDecide(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if path == "" {
		respond.Error(w, http.StatusBadRequest, "path is required")
		return
	}
	decision, route := h.guard.Navigate(path, auth.FromContext(r.Context()))
	respond.JSON(w, http.StatusOK, "navigation evaluated", h.guard.Table().Describe(path, route, decision))
}

// handleRoutes lists the screens the caller may open, for menu rendering.
func (h *NavigationHandler) handleRoutes(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	views := []dto.RouteView{}
	for _, route := range h.guard.Table().Routes() {
		if route.Redirect != "" {
			continue
		}
		if !router.Decide(route.Path, route.Meta, sess).Allowed() {
			continue
		}
		views = append(views, route.View())
	}
	respond.JSON(w, http.StatusOK, "routes listed", views)
}
