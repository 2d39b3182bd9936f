package middleware

import (
	"net/http"

	"github.com/hongminglow/all-in-admin/internal/auth"
	"github.com/hongminglow/all-in-admin/internal/http/respond"
	"github.com/hongminglow/all-in-admin/internal/router"
)

// Gate runs console page requests through the navigation guard. Allowed
// requests reach next with the matched route in context; the rest are
// redirected the way the console would redirect them client-side. It must
// run after Sessions.
func Gate(guard *router.Guard, next http.Handler) http.Handler {
	table := guard.Table()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := auth.FromContext(r.Context())
		decision, route := guard.Navigate(r.URL.RequestURI(), sess)
		if decision.Allowed() {
			next.ServeHTTP(w, r.WithContext(router.WithRoute(r.Context(), route)))
			return
		}

		target := table.URL(*decision.Redirect)
		if decision.Outcome == router.OutcomeForbidden && sameRoute(table, target, r.URL.Path) {
			// the landing route itself rejects this role; redirecting would loop
			respond.Error(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		http.Redirect(w, r, target, http.StatusFound)
	})
}

func sameRoute(table *router.Table, a, b string) bool {
	_, ta, _ := table.Resolve(a)
	_, tb, _ := table.Resolve(b)
	return ta.Path == tb.Path
}
