package identityrepo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"eventra/internal/domain"
	apperror "eventra/internal/errors"
	"eventra/internal/pkg/logger"
	"eventra/internal/roles"
)

// IdentityRepository é o diretório de identidades do processo, apenas em memória.
// Um reinício perde todos os cadastros feitos após o seed.
type IdentityRepository struct {
	mu      sync.RWMutex
	byEmail map[string]domain.Identity
	order   []string // emails na ordem de inserção, para listagem estável
	logger  logger.Logger
}

// NewIdentityRepository cria um diretório vazio.
func NewIdentityRepository(log logger.Logger) *IdentityRepository {
	return &IdentityRepository{
		byEmail: make(map[string]domain.Identity),
		logger:  log,
	}
}

// Seed carrega identidades iniciais, mantendo os IDs informados.
func (r *IdentityRepository) Seed(identities ...domain.Identity) error {
	for _, identity := range identities {
		if _, err := r.Save(context.Background(), identity); err != nil {
			return fmt.Errorf("seed %s: %w", identity.Email, err)
		}
	}
	r.logger.Info("Diretório de identidades carregado.", map[string]interface{}{"count": len(identities)})
	return nil
}

// Save insere uma nova identidade. Gera um ID quando ausente e rejeita emails duplicados.
func (r *IdentityRepository) Save(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	if !roles.IsKnown(identity.Role) {
		return domain.Identity{}, apperror.NewValidationError(fmt.Sprintf("unknown role '%s'", identity.Role))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[identity.Email]; exists {
		return domain.Identity{}, apperror.NewConflictError(fmt.Sprintf("an account with email '%s' already exists", identity.Email))
	}

	if identity.ID == "" {
		identity.ID = uuid.NewString()
	}

	r.byEmail[identity.Email] = identity
	r.order = append(r.order, identity.Email)

	r.logger.Debug("Identidade salva no diretório.", map[string]interface{}{"user_id": identity.ID, "role": identity.Role})
	return identity, nil
}

// FindByEmailAndRole exige que email e papel coincidam.
func (r *IdentityRepository) FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (domain.Identity, error) {
	identity, err := r.FindByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, err
	}
	if identity.Role != role {
		return domain.Identity{}, apperror.NewNotFoundError(fmt.Sprintf("no '%s' account for this email", role))
	}
	return identity, nil
}

// FindByEmail busca uma identidade pelo email.
func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, ok := r.byEmail[email]
	if !ok {
		return domain.Identity{}, apperror.NewNotFoundError(fmt.Sprintf("no account with email '%s'", email))
	}
	return identity, nil
}

// ExistsEmail informa se o email já está no diretório.
func (r *IdentityRepository) ExistsEmail(ctx context.Context, email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok
}

// List retorna uma cópia do diretório na ordem de inserção.
func (r *IdentityRepository) List(ctx context.Context) []domain.Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Identity, 0, len(r.order))
	for _, email := range r.order {
		out = append(out, r.byEmail[email])
	}
	return out
}
