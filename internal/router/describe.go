package router

import "github.com/hongminglow/all-in-admin/internal/models/dto"

// Describe renders a guard decision for API and CLI output.
func (t *Table) Describe(path string, route Route, d Decision) dto.NavigationResponse {
	resp := dto.NavigationResponse{
		Path:    path,
		Route:   route.Name,
		Outcome: string(d.Outcome),
	}
	if d.Redirect != nil {
		resp.Redirect = &dto.Location{
			Path:   d.Redirect.Path,
			Name:   d.Redirect.Name,
			Params: d.Redirect.Params,
			URL:    t.URL(*d.Redirect),
		}
	}
	return resp
}

// View renders a route for menu listings and page placeholders.
func (r Route) View() dto.RouteView {
	view := dto.RouteView{Path: r.Path, Name: r.Name, Component: r.Component}
	for _, role := range r.Meta.Roles {
		view.Roles = append(view.Roles, role.String())
	}
	return view
}
