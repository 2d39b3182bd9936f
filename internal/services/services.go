package services

import (
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/all-in-admin/internal/logging"
	"github.com/hongminglow/all-in-admin/internal/metrics"
)

// Resource names as used in CLI commands and console API paths.
const (
	Employees         = "employees"
	Designations      = "designations"
	ExpenseCategories = "expense-categories"
	Expenses          = "expenses"
)

// Definition binds a resource name to its collection path and list shape.
type Definition struct {
	Name     string
	BasePath string
	Unwrap   Unwrap
}

// Definitions lists every resource the console manages. The list shapes
// differ per endpoint and are kept exactly as the backend serves them.
func Definitions() []Definition {
	return []Definition{
		{Name: Employees, BasePath: "/employees", Unwrap: Wrapped("employees")},
		{Name: Designations, BasePath: "/designations", Unwrap: Wrapped("designations")},
		{Name: ExpenseCategories, BasePath: "/expense-categories", Unwrap: BareArray()},
		{Name: Expenses, BasePath: "/expenses", Unwrap: BareArray()},
	}
}

// NewResourceClient builds a client for one resource over backend.
func NewResourceClient(backend Backend, def Definition, log logrus.FieldLogger, m *metrics.Metrics) *ResourceClient {
	if log == nil {
		log = logging.Discard()
	}
	return &ResourceClient{
		name:     def.Name,
		basePath: def.BasePath,
		unwrap:   def.Unwrap,
		backend:  backend,
		log:      log,
		metrics:  m,
	}
}

// Registry holds one client per managed resource.
type Registry struct {
	Employees         *ResourceClient
	Designations      *ResourceClient
	ExpenseCategories *ResourceClient
	Expenses          *ResourceClient

	ordered []*ResourceClient
	byName  map[string]*ResourceClient
}

// NewRegistry instantiates every resource in Definitions over one shared backend.
func NewRegistry(backend Backend, log logrus.FieldLogger, m *metrics.Metrics) *Registry {
	r := &Registry{byName: make(map[string]*ResourceClient)}
	for _, def := range Definitions() {
		client := NewResourceClient(backend, def, log, m)
		r.ordered = append(r.ordered, client)
		r.byName[def.Name] = client
	}
	r.Employees = r.byName[Employees]
	r.Designations = r.byName[Designations]
	r.ExpenseCategories = r.byName[ExpenseCategories]
	r.Expenses = r.byName[Expenses]
	return r
}

// Lookup returns the client registered under name.
func (r *Registry) Lookup(name string) (*ResourceClient, bool) {
	client, ok := r.byName[name]
	return client, ok
}

// All returns the clients in definition order.
func (r *Registry) All() []*ResourceClient {
	out := make([]*ResourceClient, len(r.ordered))
	copy(out, r.ordered)
	return out
}
