// Package dispatch resolve o alias genérico /dashboard para a view do papel da sessão.
package dispatch

import (
	"eventra/internal/domain"
	"eventra/internal/guard"
	"eventra/internal/pkg/logger"
	"eventra/internal/pkg/metrics"
	"eventra/internal/roles"
)

// Dispatcher não repete a verificação de autenticação: assume que o guard já rodou.
type Dispatcher struct {
	table    *guard.Table
	session  guard.SessionReader
	fallback guard.Declaration
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// New cria o dispatcher sobre a mesma tabela usada pelo guard.
func New(table *guard.Table, session guard.SessionReader, m *metrics.Metrics, log logger.Logger) *Dispatcher {
	fallback, ok := table.Lookup(roles.FallbackDestination)
	if !ok {
		fallback = guard.Declaration{
			Path: roles.FallbackDestination, View: guard.ViewUserDashboard, Title: "Dashboard", Access: guard.AccessProtected,
		}
	}
	return &Dispatcher{table: table, session: session, fallback: fallback, metrics: m, logger: log}
}

// Resolve devolve a declaração da view a renderizar no lugar de /dashboard.
// ok é falso quando não há sessão; nesse caso o redirect do guard prevalece.
func (d *Dispatcher) Resolve() (guard.Declaration, *domain.Identity, bool) {
	identity := d.session.Current()
	if identity == nil {
		return guard.Declaration{}, nil, false
	}

	decl := d.ResolveRole(identity.Role)
	d.metrics.Dispatches.WithLabelValues(decl.View).Inc()
	return decl, identity, true
}

// ResolveRole aplica o registro de papéis; destinos sem declaração caem no dashboard genérico.
func (d *Dispatcher) ResolveRole(role domain.Role) guard.Declaration {
	destination := roles.DashboardDestination(role)

	decl, ok := d.table.Lookup(destination)
	if !ok {
		d.logger.Warn("Destino de dashboard sem view declarada.", map[string]interface{}{
			"role": role, "destination": destination,
		})
		return d.fallback
	}
	return decl
}
