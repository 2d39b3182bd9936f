package router

import (
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/all-in-admin/internal/auth"
	"github.com/hongminglow/all-in-admin/internal/logging"
	"github.com/hongminglow/all-in-admin/internal/metrics"
	"github.com/hongminglow/all-in-admin/internal/models"
)

// Outcome is the guard's verdict for one navigation.
type Outcome string

const (
	OutcomeAllow     Outcome = "allow"
	OutcomeLogin     Outcome = "login"
	OutcomeForbidden Outcome = "forbidden"
)

// Location is a redirect target, addressed either by Path or by route Name.
type Location struct {
	Path   string
	Name   string
	Params map[string]string
}

// Decision is the result of evaluating a navigation.
type Decision struct {
	Outcome  Outcome
	Redirect *Location
}

// Allowed reports whether navigation may proceed.
func (d Decision) Allowed() bool { return d.Outcome == OutcomeAllow }

// Decide evaluates a navigation to fullPath for a route carrying meta.
//
// The checks run in a fixed order: authentication first, then role
// membership. A role-restricted route visited without a session therefore
// always goes to login and is never evaluated against roles.
func Decide(fullPath string, meta Meta, sess auth.Session) Decision {
	authenticated := sess != nil && sess.IsAuthenticated()

	if !meta.Public && !authenticated {
		return Decision{
			Outcome: OutcomeLogin,
			Redirect: &Location{
				Name:   LoginRouteName,
				Params: map[string]string{NextURLParam: fullPath},
			},
		}
	}
	if meta.Roles != nil && authenticated && !models.HasRole(meta.Roles, sess.UserRole()) {
		return Decision{
			Outcome:  OutcomeForbidden,
			Redirect: &Location{Path: LandingPath},
		}
	}
	return Decision{Outcome: OutcomeAllow}
}

// Guard applies Decide to paths resolved through a route table.
type Guard struct {
	table   *Table
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

// NewGuard builds a guard over table. log and m may be nil.
func NewGuard(table *Table, log logrus.FieldLogger, m *metrics.Metrics) *Guard {
	if log == nil {
		log = logging.Discard()
	}
	return &Guard{table: table, log: log, metrics: m}
}

// Table returns the guard's route table.
func (g *Guard) Table() *Table { return g.table }

// Navigate resolves fullPath and decides whether sess may see it.
func (g *Guard) Navigate(fullPath string, sess auth.Session) (Decision, Route) {
	route, target, _ := g.table.Resolve(fullPath)
	decision := Decide(target.FullPath, route.Meta, sess)

	label := route.Name
	if label == "" {
		label = "unmatched"
	}
	g.metrics.ObserveNavigation(label, string(decision.Outcome))

	switch decision.Outcome {
	case OutcomeLogin:
		g.log.WithField("path", target.FullPath).Info("route guard: not logged in, redirect to login")
	case OutcomeForbidden:
		g.log.WithFields(logrus.Fields{
			"path": target.Path,
			"role": sess.UserRole(),
		}).Info("route guard: unauthorized role, redirect to landing")
	}
	return decision, route
}
