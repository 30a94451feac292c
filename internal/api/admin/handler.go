package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"eventra/internal/domain"
	apperror "eventra/internal/errors"
	"eventra/internal/pkg/logger"
	"eventra/internal/pkg/middleware"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// AdminService define as operações administrativas do serviço de autenticação.
type AdminService interface {
	Provision(ctx context.Context, actor domain.Identity, data domain.ProvisionData) (domain.Identity, error)
	ListIdentities(ctx context.Context) []domain.Identity
	Activity(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

// Handler agrupa os endpoints administrativos. As rotas exigem sessão de admin ou super-admin.
type Handler struct {
	Service AdminService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AdminService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		h.Logger.Info("Requisição administrativa concluída", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": successStatus,
		})
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// UsersHandler despacha /api/admin/users por método.
func (h *Handler) UsersHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListUsersHandler(w, r)
	case http.MethodPost:
		h.ProvisionUserHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ProvisionUserHandler lida com a requisição POST /api/admin/users.
// @Summary Provisiona uma conta de qualquer papel
// @Description Único caminho para criar contas de papéis de autoridade.
// @Tags admin
// @Accept json
// @Produce json
// @Param account body domain.ProvisionData true "Dados da conta"
// @Success 201 {object} domain.Identity "Conta criada"
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 401 {object} domain.ErrorResponse "Sem sessão"
// @Failure 403 {object} domain.ErrorResponse "Papel sem permissão"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Router /api/admin/users [post]
func (h *Handler) ProvisionUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewUnauthorizedError("Authentication required."), http.StatusCreated)
		return
	}

	var data domain.ProvisionData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Invalid JSON payload."), http.StatusCreated)
		return
	}

	created, err := h.Service.Provision(r.Context(), actor, data)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// ListUsersHandler lida com a requisição GET /api/admin/users.
// @Summary Lista o diretório de identidades
// @Tags admin
// @Produce json
// @Success 200 {array} domain.Identity "Diretório"
// @Failure 401 {object} domain.ErrorResponse "Sem sessão"
// @Failure 403 {object} domain.ErrorResponse "Papel sem permissão"
// @Router /api/admin/users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	h.handleServiceResponse(w, r, h.Service.ListIdentities(r.Context()), nil, http.StatusOK)
}

// ActivityHandler lida com a requisição GET /api/admin/activity?limit=.
// @Summary Lista o log de atividades, mais recentes primeiro
// @Tags admin
// @Produce json
// @Param limit query int false "Quantidade máxima de entradas (padrão 50, máximo 500)"
// @Success 200 {array} domain.ActivityEntry "Entradas"
// @Failure 400 {object} domain.ErrorResponse "Limite inválido"
// @Failure 401 {object} domain.ErrorResponse "Sem sessão"
// @Failure 403 {object} domain.ErrorResponse "Papel sem permissão"
// @Router /api/admin/activity [get]
func (h *Handler) ActivityHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("limit must be a positive integer"), http.StatusOK)
			return
		}
		limit = parsed
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	entries, err := h.Service.Activity(r.Context(), limit)
	h.handleServiceResponse(w, r, entries, err, http.StatusOK)
}
