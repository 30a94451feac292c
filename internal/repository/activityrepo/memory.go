package activityrepo

import (
	"context"
	"sync"

	"eventra/internal/domain"
)

// MemoryRepository é o log de atividades usado quando DATABASE_URL não está definido.
// Mantém no máximo capacity entradas, descartando as mais antigas.
type MemoryRepository struct {
	mu       sync.Mutex
	entries  []domain.ActivityEntry
	capacity int
}

// NewMemoryRepository cria um log em memória limitado.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = 500
	}
	return &MemoryRepository{capacity: capacity}
}

func (r *MemoryRepository) Record(ctx context.Context, entry domain.ActivityEntry) (domain.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry = stamp(entry)
	r.entries = append(r.entries, entry)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
	return entry, nil
}

// List retorna as entradas mais recentes primeiro.
func (r *MemoryRepository) List(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []domain.ActivityEntry{}
	for i := len(r.entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}
