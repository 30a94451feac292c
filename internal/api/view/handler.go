// Package view renderiza as views da aplicação como descritores JSON,
// depois que o guard de rotas já decidiu a navegação.
package view

import (
	"encoding/json"
	"net/http"

	"eventra/internal/domain"
	"eventra/internal/guard"
	"eventra/internal/pkg/logger"
	"eventra/internal/pkg/middleware"
	"eventra/internal/roles"
)

// Dispatcher resolve o alias genérico /dashboard.
type Dispatcher interface {
	Resolve() (guard.Declaration, *domain.Identity, bool)
}

// Response é o descritor de uma view renderizada.
type Response struct {
	View          string           `json:"view" example:"vice-chancellor-dashboard"`
	Title         string           `json:"title" example:"Vice Chancellor Dashboard"`
	Path          string           `json:"path" example:"/dashboard"`
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user,omitempty"`
	RoleLabel     string           `json:"roleLabel,omitempty"`
	Navigation    []roles.NavItem  `json:"navigation,omitempty"`
}

// Handler renderiza a view escolhida pelo guard.
type Handler struct {
	dispatcher Dispatcher
	logger     logger.Logger
}

// NewHandler cria o handler de views.
func NewHandler(dispatcher Dispatcher, log logger.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, logger: log}
}

// ServeHTTP espera a decisão do guard no contexto (middleware.NewGuardMiddleware).
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	decision, ok := middleware.GetDecisionFromContext(r.Context())
	if !ok {
		h.logger.Error("View chamada sem decisão do guard.", nil)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	decl := decision.Declaration
	identity := decision.Identity

	if decl.Path == roles.PathUserDashboard && decision.Outcome == guard.OutcomeRender {
		if resolved, current, ok := h.dispatcher.Resolve(); ok {
			decl, identity = resolved, current
		}
	}

	status := http.StatusOK
	switch {
	case decision.Outcome == guard.OutcomeNotFound:
		status = http.StatusNotFound
	case decl.View == guard.ViewUnauthorized:
		status = http.StatusForbidden
	}

	h.render(w, r, status, describe(decl, r.URL.Path, identity))
}

func describe(decl guard.Declaration, path string, identity *domain.Identity) Response {
	resp := Response{View: decl.View, Title: decl.Title, Path: path}
	if identity != nil {
		resp.Authenticated = true
		resp.User = identity
		resp.RoleLabel = roles.LabelFor(identity.Role)
		resp.Navigation = roles.NavigationFor(identity.Role)
	}
	return resp
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Falha ao codificar a view.", err)
	}
}
