package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"eventra/internal/domain"
	apperror "eventra/internal/errors"
	"eventra/internal/guard"
	"eventra/internal/pkg/logger"
	"eventra/internal/roles"
	"eventra/internal/service/authservice"
)

// AuthService define o contrato que o Handler espera da camada de Serviço.
type AuthService interface {
	Login(ctx context.Context, email, secret string, role domain.Role) (domain.Identity, error)
	Register(ctx context.Context, data domain.RegisterData) (domain.Identity, error)
	Logout(ctx context.Context)
	Current() *domain.Identity
	RequestPasswordRecovery(ctx context.Context, req domain.PasswordRecoveryRequest) error
	VerifyResetToken(ctx context.Context, resetToken string) (string, error)
}

// LoginResponse é devolvido após um login bem-sucedido.
type LoginResponse struct {
	User      domain.Identity `json:"user"`
	RoleLabel string          `json:"roleLabel" example:"Vice Chancellor"`
	Redirect  string          `json:"redirect" example:"/dashboard"`
}

// SessionResponse descreve a sessão corrente do processo.
type SessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user,omitempty"`
	RoleLabel     string           `json:"roleLabel,omitempty"`
	Navigation    []roles.NavItem  `json:"navigation,omitempty"`
}

// MessageResponse é uma resposta simples com mensagem e destino opcional.
type MessageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// RegisterResponse é devolvido após o cadastro. O cadastro não abre sessão.
type RegisterResponse struct {
	User     domain.Identity `json:"user"`
	Message  string          `json:"message" example:"Account created. Please log in."`
	Redirect string          `json:"redirect" example:"/login"`
}

// VerifyResponse confirma um link de recuperação válido.
type VerifyResponse struct {
	Email string `json:"email"`
}

// Handler agrupa os endpoints de autenticação.
type Handler struct {
	Service AuthService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuthService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse padroniza respostas de sucesso e a tradução de erros para HTTP.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
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

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Invalid JSON payload."), http.StatusOK)
		return false
	}
	return true
}

// LoginHandler lida com a requisição POST /api/login.
// @Summary Autentica email, segredo e papel declarado
// @Description Abre a sessão do processo e informa para onde navegar. Qualquer falha devolve a mesma mensagem genérica.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Email, senha e papel"
// @Success 200 {object} LoginResponse "Login realizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 429 {object} domain.ErrorResponse "Muitas tentativas"
// @Router /api/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	identity, err := h.Service.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, LoginResponse{
		User:      identity,
		RoleLabel: roles.LabelFor(identity.Role),
		Redirect:  roles.LandingPath(identity.Role),
	}, nil, http.StatusOK)
}

// RegisterHandler lida com a requisição POST /api/register.
// @Summary Cadastra uma conta de papel público
// @Description Apenas student e faculty podem se cadastrar. O cadastro não autentica.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.RegisterData true "Dados do formulário de cadastro"
// @Success 201 {object} RegisterResponse "Conta criada"
// @Failure 400 {object} domain.ErrorResponse "Formulário inválido"
// @Failure 403 {object} domain.ErrorResponse "Papel exige provisionamento por administrador"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Router /api/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var data domain.RegisterData
	if !h.decode(w, r, &data) {
		return
	}

	created, err := h.Service.Register(r.Context(), data)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, RegisterResponse{
		User:     created,
		Message:  "Account created. Please log in.",
		Redirect: guard.PathLogin,
	}, nil, http.StatusCreated)
}

// LogoutHandler lida com a requisição POST /api/logout.
// @Summary Encerra a sessão
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse "Sessão encerrada"
// @Router /api/logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.Service.Logout(r.Context())
	h.handleServiceResponse(w, r, MessageResponse{Message: "Logged out.", Redirect: guard.PathLogin}, nil, http.StatusOK)
}

// SessionHandler lida com a requisição GET /api/session.
// @Summary Retorna a sessão corrente
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse "Sessão corrente"
// @Router /api/session [get]
func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := SessionResponse{}
	if identity := h.Service.Current(); identity != nil {
		resp = SessionResponse{
			Authenticated: true,
			User:          identity,
			RoleLabel:     roles.LabelFor(identity.Role),
			Navigation:    roles.NavigationFor(identity.Role),
		}
	}
	h.handleServiceResponse(w, r, resp, nil, http.StatusOK)
}

// PasswordRecoveryHandler lida com a requisição POST /api/password-recovery.
// @Summary Solicita um link de recuperação de senha
// @Description A resposta é a mesma para emails cadastrados e desconhecidos.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.PasswordRecoveryRequest true "Email da conta"
// @Success 202 {object} MessageResponse "Solicitação aceita"
// @Failure 400 {object} domain.ErrorResponse "Email inválido"
// @Router /api/password-recovery [post]
func (h *Handler) PasswordRecoveryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.PasswordRecoveryRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.Service.RequestPasswordRecovery(r.Context(), req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusAccepted)
		return
	}
	h.handleServiceResponse(w, r, MessageResponse{Message: authservice.MsgRecoveryAccepted}, nil, http.StatusAccepted)
}

// VerifyResetTokenHandler lida com a requisição GET /api/password-recovery/verify?token=.
// @Summary Valida um link de recuperação de senha
// @Tags auth
// @Produce json
// @Param token query string true "Token recebido no link"
// @Success 200 {object} VerifyResponse "Link válido"
// @Failure 401 {object} domain.ErrorResponse "Link inválido ou expirado"
// @Router /api/password-recovery/verify [get]
func (h *Handler) VerifyResetTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email, err := h.Service.VerifyResetToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	h.handleServiceResponse(w, r, VerifyResponse{Email: email}, nil, http.StatusOK)
}
