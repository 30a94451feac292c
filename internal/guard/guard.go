package guard

import (
	"eventra/internal/domain"
	"eventra/internal/pkg/logger"
	"eventra/internal/pkg/metrics"
)

// Outcome é o estado terminal de uma tentativa de navegação.
type Outcome string

const (
	OutcomeRender               Outcome = "render"
	OutcomeRedirectLogin        Outcome = "redirect_login"
	OutcomeRedirectUnauthorized Outcome = "redirect_unauthorized"
	OutcomeNotFound             Outcome = "not_found"
)

// Decision é o resultado de Evaluate.
type Decision struct {
	Outcome     Outcome
	Declaration Declaration
	Identity    *domain.Identity // nil quando não autenticado
	Location    string           // destino do redirect, quando houver
}

// SessionReader é a parte do Store de sessão que o guard consulta.
type SessionReader interface {
	Current() *domain.Identity
}

// Guard decide, a cada navegação, se a view pode ser renderizada.
// Nada é cacheado: a sessão é relida em toda chamada.
type Guard struct {
	table   *Table
	session SessionReader
	metrics *metrics.Metrics
	logger  logger.Logger
}

// New cria um Guard sobre a tabela de declarações.
func New(table *Table, session SessionReader, m *metrics.Metrics, log logger.Logger) *Guard {
	return &Guard{table: table, session: session, metrics: m, logger: log}
}

// Table expõe a tabela de declarações do guard.
func (g *Guard) Table() *Table {
	return g.table
}

// Evaluate decide a navegação para path com a sessão corrente.
func (g *Guard) Evaluate(path string) Decision {
	identity := g.session.Current()

	decl, ok := g.table.Lookup(path)
	if !ok {
		decl = g.table.NotFound()
	}

	decision := Decide(decl, identity)
	g.metrics.GuardDecisions.WithLabelValues(string(decision.Outcome)).Inc()

	if decision.Outcome == OutcomeRedirectUnauthorized {
		g.logger.Debug("Navegação negada para o papel.", map[string]interface{}{"path": path, "role": identity.Role})
	}
	return decision
}

// Decide aplica as regras a uma declaração e identidade. A verificação de autenticação
// sempre precede a de papel, então um papel negado nunca é avaliado sem sessão.
func Decide(decl Declaration, identity *domain.Identity) Decision {
	decision := Decision{Declaration: decl, Identity: identity}

	switch decl.Access {
	case AccessPublic:
		decision.Outcome = OutcomeRender
	case AccessTerminal:
		decision.Outcome = OutcomeRender
		if decl.View == ViewNotFound {
			decision.Outcome = OutcomeNotFound
		}
	default:
		switch {
		case identity == nil:
			decision.Outcome = OutcomeRedirectLogin
			decision.Location = PathLogin
		case !decl.Permits(identity.Role):
			decision.Outcome = OutcomeRedirectUnauthorized
			decision.Location = PathUnauthorized
		default:
			decision.Outcome = OutcomeRender
		}
	}
	return decision
}
