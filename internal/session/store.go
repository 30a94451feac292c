package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"eventra/internal/domain"
	"eventra/internal/pkg/cache"
	"eventra/internal/pkg/logger"
	"eventra/internal/roles"
)

// StorageKey é a única chave persistida pela aplicação.
const StorageKey = "eventra_user"

// Store guarda a identidade corrente do processo e o blob persistido correspondente.
// Autenticado se e somente se existir uma identidade corrente.
type Store struct {
	mu      sync.RWMutex
	current *domain.Identity
	storage cache.Client
	logger  logger.Logger
}

// NewStore cria um Store vazio. Restore deve ser chamado antes de servir requisições.
func NewStore(storage cache.Client, log logger.Logger) *Store {
	return &Store{storage: storage, logger: log}
}

// Restore tenta recuperar a sessão do blob persistido. Nunca falha para quem chama:
// blob ausente, ilegível ou corrompido resulta em sessão vazia.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	raw, err := s.storage.Get(ctx, StorageKey)
	if errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Debug("Nenhuma sessão persistida encontrada.", nil)
		return
	}
	if err != nil {
		s.logger.Error("Falha ao ler a sessão persistida; iniciando sem sessão.", err)
		return
	}

	identity, err := decode(raw)
	if err != nil {
		s.logger.Warn("Sessão persistida corrompida descartada.", map[string]interface{}{"reason": err.Error()})
		if delErr := s.storage.Delete(ctx, StorageKey); delErr != nil {
			s.logger.Error("Falha ao remover sessão corrompida.", delErr)
		}
		return
	}

	s.current = &identity
	s.logger.Info("Sessão restaurada.", map[string]interface{}{"user_id": identity.ID, "role": identity.Role})
}

// Set substitui a identidade corrente e persiste o blob.
// A identidade vale em memória mesmo se a persistência falhar; o erro é devolvido para log.
func (s *Store) Set(ctx context.Context, identity domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &identity

	blob, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("session: marshal identity: %w", err)
	}
	if err := s.storage.Set(ctx, StorageKey, blob, 0); err != nil {
		return fmt.Errorf("session: persist identity: %w", err)
	}
	return nil
}

// Clear remove a identidade corrente e apaga o blob persistido.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("session: delete persisted identity: %w", err)
	}
	return nil
}

// Current retorna uma cópia da identidade corrente, ou nil.
func (s *Store) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	identity := *s.current
	return &identity
}

// IsAuthenticated deriva da presença da identidade corrente.
func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

// decode valida que o blob é uma Identity utilizável, não apenas JSON bem formado.
func decode(raw string) (domain.Identity, error) {
	var identity *domain.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return domain.Identity{}, err
	}
	if identity == nil {
		return domain.Identity{}, errors.New("empty identity")
	}
	if identity.ID == "" || identity.Email == "" {
		return domain.Identity{}, errors.New("identity without id or email")
	}
	if !roles.IsKnown(identity.Role) {
		return domain.Identity{}, fmt.Errorf("unknown role %q", identity.Role)
	}
	return *identity, nil
}
