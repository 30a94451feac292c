package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"eventra/internal/domain"
	apperror "eventra/internal/errors"
	"eventra/internal/guard"
)

// ContextKey é um tipo próprio para evitar colisão com chaves string de outros pacotes.
type ContextKey int

const (
	// IdentityKey guarda a identidade da sessão corrente.
	IdentityKey ContextKey = iota
	// DecisionKey guarda a decisão do guard para a navegação.
	DecisionKey
)

// SessionReader é o contrato mínimo do Store de sessão.
type SessionReader interface {
	Current() *domain.Identity
}

// Evaluator é o contrato do guard de rotas.
type Evaluator interface {
	Evaluate(path string) guard.Decision
}

// NewGuardMiddleware avalia cada navegação no guard. Redirects encerram a requisição;
// os demais desfechos seguem para o handler com a decisão no contexto.
func NewGuardMiddleware(g Evaluator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := g.Evaluate(r.URL.Path)

			switch decision.Outcome {
			case guard.OutcomeRedirectLogin, guard.OutcomeRedirectUnauthorized:
				http.Redirect(w, r, decision.Location, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), DecisionKey, decision)
			if decision.Identity != nil {
				ctx = context.WithValue(ctx, IdentityKey, *decision.Identity)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetDecisionFromContext extrai a decisão do guard anexada pelo middleware.
func GetDecisionFromContext(ctx context.Context) (guard.Decision, bool) {
	decision, ok := ctx.Value(DecisionKey).(guard.Decision)
	return decision, ok
}

// NewSessionMiddleware exige uma sessão autenticada nas rotas da API e anexa a identidade ao contexto.
func NewSessionMiddleware(session SessionReader) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity := session.Current()
			if identity == nil {
				writeError(w, apperror.NewUnauthorizedError("Authentication required."))
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetIdentityFromContext é uma função utilitária para extrair a identidade no handler.
func GetIdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(domain.Identity)
	return identity, ok
}

// PermissionMiddleware libera o recurso apenas para os papéis informados.
// Deve rodar depois de NewSessionMiddleware.
func PermissionMiddleware(requiredRoles ...domain.Role) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentityFromContext(r.Context())
			if !ok {
				writeError(w, apperror.NewUnauthorizedError("Authentication required."))
				return
			}

			for _, requiredRole := range requiredRoles {
				if identity.Role == requiredRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeError(w, apperror.NewForbiddenError("You do not have permission to access this resource."))
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	})
}
