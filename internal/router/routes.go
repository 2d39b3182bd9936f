package router

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hongminglow/all-in-admin/internal/models"
)

const (
	// LoginRouteName is the route unauthenticated visitors are sent to.
	LoginRouteName = "admin-login"
	// LandingPath is where sessions lacking a route's role are sent.
	LandingPath = "/"
	// NextURLParam carries the originally requested path to the login screen.
	NextURLParam = "nextUrl"

	maxRedirects = 8
)

// Meta is the access metadata attached to a route.
type Meta struct {
	Public bool
	// Roles lists the roles allowed on the route. A nil slice means the
	// route does not restrict by role; a non-nil empty slice admits nobody.
	Roles []models.Role `validate:"omitempty,dive,oneof=admin accountant"`
}

// Route is one entry of the console's static route table.
type Route struct {
	Path      string `validate:"required,startswith=/"`
	Name      string
	Component string `validate:"required_without=Redirect"`
	Redirect  string `validate:"omitempty,startswith=/"`
	Meta      Meta
}

// DefaultRoutes is the console's route table.
func DefaultRoutes() []Route {
	staff := []models.Role{models.RoleAdmin, models.RoleAccountant}
	return []Route{
		{Path: "/admin/login", Name: LoginRouteName, Component: "Login", Meta: Meta{Public: true}},
		{Path: "/admin", Redirect: "/admin/login"},
		{Path: "/dashboard", Name: "dashboard", Component: "Dashboard", Meta: Meta{Roles: staff}},
		{Path: "/", Name: "home", Component: "Dashboard", Meta: Meta{Roles: staff}},
		{Path: "/users", Name: "users", Component: "Users", Meta: Meta{Roles: []models.Role{models.RoleAdmin}}},
		{Path: "/employees", Name: "employees", Component: "EmployeeData", Meta: Meta{Roles: staff}},
		{Path: "/expenses", Name: "expenses", Component: "ExpensesData", Meta: Meta{Roles: staff}},
	}
}

// Target is a navigation destination after path resolution.
type Target struct {
	// Path is the normalized route path.
	Path string
	// FullPath is the requested path including query and fragment.
	FullPath string
}

// Table is a validated, immutable route table.
type Table struct {
	routes []Route
	byPath map[string]Route
	byName map[string]Route
}

var validate = validator.New()

// NewTable validates routes and indexes them by path and name.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{
		byPath: make(map[string]Route, len(routes)),
		byName: make(map[string]Route, len(routes)),
	}
	for _, r := range routes {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("route %q: %w", r.Path, err)
		}
		if r.Meta.Public && r.Meta.Roles != nil {
			return nil, fmt.Errorf("route %q: public routes cannot declare roles", r.Path)
		}
		p := normalizePath(r.Path)
		if _, dup := t.byPath[p]; dup {
			return nil, fmt.Errorf("route %q: duplicate path", r.Path)
		}
		r.Path = p
		t.byPath[p] = r
		if r.Name != "" {
			if _, dup := t.byName[r.Name]; dup {
				return nil, fmt.Errorf("route %q: duplicate name %q", r.Path, r.Name)
			}
			t.byName[r.Name] = r
		}
		t.routes = append(t.routes, r)
	}
	if _, ok := t.byName[LoginRouteName]; !ok {
		return nil, errors.New("route table has no login route")
	}
	for _, r := range t.routes {
		if r.Redirect != "" {
			if _, ok := t.byPath[normalizePath(r.Redirect)]; !ok {
				return nil, fmt.Errorf("route %q: redirect target %q is not a route", r.Path, r.Redirect)
			}
		}
	}
	return t, nil
}

// DefaultTable returns the validated DefaultRoutes table.
func DefaultTable() *Table {
	t, err := NewTable(DefaultRoutes())
	if err != nil {
		panic(err)
	}
	return t
}

// Routes returns the table in declaration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup finds a route by name.
func (t *Table) Lookup(name string) (Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Resolve matches fullPath against the table, following alias redirects.
// Unmatched paths return ok=false and a zero Route, whose empty Meta makes
// them login-protected but role-free.
func (t *Table) Resolve(fullPath string) (Route, Target, bool) {
	target := parseTarget(fullPath)
	for range maxRedirects {
		r, ok := t.byPath[target.Path]
		if !ok {
			return Route{}, target, false
		}
		if r.Redirect == "" {
			return r, target, true
		}
		target = parseTarget(r.Redirect)
	}
	return Route{}, target, false
}

// URL renders a redirect location as a browser URL. Named locations carry
// their params in the query string.
func (t *Table) URL(loc Location) string {
	if loc.Name == "" {
		return loc.Path
	}
	r, ok := t.byName[loc.Name]
	if !ok {
		return loc.Path
	}
	if len(loc.Params) == 0 {
		return r.Path
	}
	q := url.Values{}
	for k, v := range loc.Params {
		q.Set(k, v)
	}
	return r.Path + "?" + q.Encode()
}

func parseTarget(fullPath string) Target {
	fullPath = strings.TrimSpace(fullPath)
	if fullPath == "" {
		fullPath = "/"
	}
	if !strings.HasPrefix(fullPath, "/") {
		fullPath = "/" + fullPath
	}
	p := fullPath
	if u, err := url.Parse(fullPath); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return Target{Path: normalizePath(p), FullPath: fullPath}
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + strings.TrimPrefix(p, "/"))
}
