package authservice

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"eventra/internal/domain"
	apperror "eventra/internal/errors"
	"eventra/internal/pkg/logger"
	"eventra/internal/pkg/metrics"
	"eventra/internal/pkg/token"
	"eventra/internal/pkg/validation"
	"eventra/internal/roles"
)

// MsgInvalidCredentials é a única mensagem de falha de login. Email desconhecido,
// papel divergente e segredo incorreto são indistinguíveis para quem chama.
const MsgInvalidCredentials = "Invalid credentials. Please try again."

// MsgRecoveryAccepted é a resposta da recuperação de senha, exista o email ou não.
const MsgRecoveryAccepted = "If the address is registered, a password reset link has been sent."

// IdentityRepository é o contrato do diretório de identidades.
type IdentityRepository interface {
	Save(ctx context.Context, identity domain.Identity) (domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (domain.Identity, error)
	FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (domain.Identity, error)
	ExistsEmail(ctx context.Context, email string) bool
	List(ctx context.Context) []domain.Identity
}

// SessionStore é o contrato do Store de sessão do processo.
type SessionStore interface {
	Set(ctx context.Context, identity domain.Identity) error
	Clear(ctx context.Context) error
	Current() *domain.Identity
}

// ActivityRepository é o contrato do log de atividades.
type ActivityRepository interface {
	Record(ctx context.Context, entry domain.ActivityEntry) (domain.ActivityEntry, error)
	List(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateResetToken(email string) (string, error)
	ValidateResetToken(tokenString string) (*token.ResetClaims, error)
}

// Service implementa login, cadastro, logout, provisionamento e recuperação de senha.
type Service struct {
	repo      IdentityRepository
	session   SessionStore
	activity  ActivityRepository
	tokens    TokenService
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    logger.Logger

	demoSecretHash []byte
}

// NewService cria o serviço. O segredo de demonstração é guardado apenas como hash bcrypt.
func NewService(
	repo IdentityRepository,
	session SessionStore,
	activity ActivityRepository,
	tokens TokenService,
	demoSecret string,
	m *metrics.Metrics,
	log logger.Logger,
) (*Service, error) {
	if demoSecret == "" {
		return nil, errors.New("authservice: demo secret must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(demoSecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("authservice: hash demo secret: %w", err)
	}

	return &Service{
		repo:           repo,
		session:        session,
		activity:       activity,
		tokens:         tokens,
		validator:      validation.New(),
		metrics:        m,
		logger:         log,
		demoSecretHash: hash,
	}, nil
}

// Login autentica email + segredo + papel declarado e, em caso de sucesso, abre a sessão.
func (s *Service) Login(ctx context.Context, email, secret string, role domain.Role) (domain.Identity, error) {
	identity, err := s.repo.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		return domain.Identity{}, s.loginFailed(ctx, email, role, "no matching account")
	}

	// Normalização: prestadores sem subtipo recebem o padrão. A entrada do diretório não muda.
	if identity.Role == domain.RoleServiceProvider && identity.ServiceType == "" {
		identity.ServiceType = domain.DefaultServiceType
	}

	if err := bcrypt.CompareHashAndPassword(s.demoSecretHash, []byte(secret)); err != nil {
		return domain.Identity{}, s.loginFailed(ctx, email, role, "secret mismatch")
	}

	if err := s.session.Set(ctx, identity); err != nil {
		// A sessão vale para este processo mesmo sem o blob persistido.
		s.logger.Error("Falha ao persistir a sessão após o login.", err)
	}

	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.metrics.SessionActive.Set(1)
	s.record(ctx, domain.ActivityEntry{Action: domain.ActionLoginSucceeded, Actor: identity.Email, Role: identity.Role})
	s.logger.Info("Login realizado.", map[string]interface{}{"user_id": identity.ID, "role": identity.Role})

	return identity, nil
}

func (s *Service) loginFailed(ctx context.Context, email string, role domain.Role, reason string) error {
	s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
	s.record(ctx, domain.ActivityEntry{Action: domain.ActionLoginFailed, Actor: email, Role: role, Details: reason})
	s.logger.Debug("Login recusado.", map[string]interface{}{"email": email, "role": role, "reason": reason})
	return apperror.NewUnauthorizedError(MsgInvalidCredentials)
}

// Register cria uma conta de papel público. Não autentica quem chama.
// A ordem das verificações é fixa: elegibilidade do papel, email duplicado e só então o formulário.
func (s *Service) Register(ctx context.Context, data domain.RegisterData) (domain.Identity, error) {
	if !roles.IsPubliclyRegistrable(data.Role) {
		s.metrics.Registrations.WithLabelValues("role_rejected").Inc()
		return domain.Identity{}, apperror.NewForbiddenError(
			fmt.Sprintf("role '%s' requires administrator provisioning", data.Role),
		)
	}

	if s.repo.ExistsEmail(ctx, data.Email) {
		s.metrics.Registrations.WithLabelValues("duplicate").Inc()
		return domain.Identity{}, emailTaken(data.Email)
	}

	if err := s.validator.Struct(data); err != nil {
		s.metrics.Registrations.WithLabelValues("invalid").Inc()
		return domain.Identity{}, err
	}

	created, err := s.repo.Save(ctx, domain.Identity{
		Name:  data.Name,
		Email: data.Email,
		Role:  data.Role,
	})
	if err != nil {
		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			// Outro cadastro ganhou a corrida entre a verificação e o Save.
			s.metrics.Registrations.WithLabelValues("duplicate").Inc()
			return domain.Identity{}, emailTaken(data.Email)
		}
		return domain.Identity{}, err
	}

	s.metrics.Registrations.WithLabelValues("created").Inc()
	s.record(ctx, domain.ActivityEntry{Action: domain.ActionRegistered, Actor: created.Email, Role: created.Role})
	s.logger.Info("Conta cadastrada.", map[string]interface{}{"user_id": created.ID, "role": created.Role})

	return created, nil
}

func emailTaken(email string) error {
	return apperror.NewConflictError(fmt.Sprintf("an account with email '%s' already exists", email))
}

// Logout encerra a sessão corrente e remove o blob persistido.
func (s *Service) Logout(ctx context.Context) {
	current := s.session.Current()

	if err := s.session.Clear(ctx); err != nil {
		s.logger.Error("Falha ao remover a sessão persistida no logout.", err)
	}
	s.metrics.SessionActive.Set(0)

	if current != nil {
		s.record(ctx, domain.ActivityEntry{Action: domain.ActionLogout, Actor: current.Email, Role: current.Role})
		s.logger.Info("Logout realizado.", map[string]interface{}{"user_id": current.ID})
	}
}

// Current retorna a identidade da sessão corrente, ou nil.
func (s *Service) Current() *domain.Identity {
	return s.session.Current()
}

// Provision cria uma conta de qualquer papel conhecido em nome de um administrador.
func (s *Service) Provision(ctx context.Context, actor domain.Identity, data domain.ProvisionData) (domain.Identity, error) {
	if err := s.validator.Struct(data); err != nil {
		return domain.Identity{}, err
	}
	if !roles.IsKnown(data.Role) {
		return domain.Identity{}, apperror.NewValidationError(fmt.Sprintf("unknown role '%s'", data.Role))
	}
	if data.ServiceType != "" && data.Role != domain.RoleServiceProvider {
		return domain.Identity{}, apperror.NewValidationError("serviceType applies only to service-provider accounts")
	}
	if data.Role == domain.RoleServiceProvider && data.ServiceType == "" {
		data.ServiceType = domain.DefaultServiceType
	}

	created, err := s.repo.Save(ctx, domain.Identity{
		Name:        data.Name,
		Email:       data.Email,
		Role:        data.Role,
		ServiceType: data.ServiceType,
	})
	if err != nil {
		return domain.Identity{}, err
	}

	s.record(ctx, domain.ActivityEntry{
		Action:  domain.ActionProvisioned,
		Actor:   actor.Email,
		Role:    created.Role,
		Details: fmt.Sprintf("provisioned %s", created.Email),
	})
	s.logger.Info("Conta provisionada.", map[string]interface{}{"user_id": created.ID, "role": created.Role, "by": actor.ID})

	return created, nil
}

// ListIdentities retorna o diretório completo.
func (s *Service) ListIdentities(ctx context.Context) []domain.Identity {
	return s.repo.List(ctx)
}

// Activity retorna as entradas mais recentes do log de atividades.
func (s *Service) Activity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	return s.activity.List(ctx, limit)
}

// RequestPasswordRecovery emite um token de recuperação quando o email existe.
// O resultado observável é o mesmo para emails conhecidos e desconhecidos.
func (s *Service) RequestPasswordRecovery(ctx context.Context, req domain.PasswordRecoveryRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	if !s.repo.ExistsEmail(ctx, req.Email) {
		s.logger.Debug("Recuperação solicitada para email desconhecido.", nil)
		return nil
	}

	resetToken, err := s.tokens.GenerateResetToken(req.Email)
	if err != nil {
		s.logger.Error("Falha ao gerar token de recuperação.", err)
		return nil
	}

	// Sem transporte de email: o link é apenas registrado no log.
	s.logger.Info("Link de recuperação de senha emitido.", map[string]interface{}{
		"email": req.Email,
		"link":  "/password-recovery?token=" + resetToken,
	})
	s.record(ctx, domain.ActivityEntry{Action: domain.ActionRecovery, Actor: req.Email})
	return nil
}

// VerifyResetToken valida um token de recuperação e devolve o email associado.
func (s *Service) VerifyResetToken(ctx context.Context, resetToken string) (string, error) {
	claims, err := s.tokens.ValidateResetToken(resetToken)
	if err != nil {
		return "", apperror.NewUnauthorizedError("invalid or expired reset link")
	}
	if !s.repo.ExistsEmail(ctx, claims.Email) {
		return "", apperror.NewUnauthorizedError("invalid or expired reset link")
	}
	return claims.Email, nil
}

// record nunca altera o resultado da operação: falhas são apenas registradas no log.
func (s *Service) record(ctx context.Context, entry domain.ActivityEntry) {
	if _, err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Error("Falha ao registrar atividade.", err)
	}
}
