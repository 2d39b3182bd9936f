package dto

// NavigationResponse describes the guard's verdict for a requested path.
type NavigationResponse struct {
	Path     string    `json:"path"`
	Route    string    `json:"route,omitempty"`
	Outcome  string    `json:"outcome"`
	Redirect *Location `json:"redirect,omitempty"`
}

// Location is a redirect target addressed by path or by route name.
type Location struct {
	Path   string            `json:"path,omitempty"`
	Name   string            `json:"name,omitempty"`
	Params map[string]string `json:"params,omitempty"`
	URL    string            `json:"url"`
}

// RouteView is rendered for allowed page requests when no console build is
// configured.
type RouteView struct {
	Path      string   `json:"path"`
	Name      string   `json:"name,omitempty"`
	Component string   `json:"component"`
	Roles     []string `json:"roles,omitempty"`
}
