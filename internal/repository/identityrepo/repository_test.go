package identityrepo_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventra/internal/domain"
	apperror "eventra/internal/errors"
	"eventra/internal/pkg/logger"
	"eventra/internal/repository/identityrepo"
)

func newSeededRepo(t *testing.T) *identityrepo.IdentityRepository {
	t.Helper()
	repo := identityrepo.NewIdentityRepository(logger.NewLoggerWithWriter("debug", io.Discard))
	require.NoError(t, repo.Seed(identityrepo.DemoDirectory()...))
	return repo
}

func TestDemoDirectory_EmailsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, identity := range identityrepo.DemoDirectory() {
		assert.False(t, seen[identity.Email], "duplicate email %s", identity.Email)
		seen[identity.Email] = true
	}
}

func TestSave_GeneratesID(t *testing.T) {
	repo := newSeededRepo(t)

	saved, err := repo.Save(context.Background(), domain.Identity{Name: "New", Email: "new@university.edu", Role: domain.RoleStudent})

	require.NoError(t, err)
	_, parseErr := uuid.Parse(saved.ID)
	assert.NoError(t, parseErr)
	assert.True(t, repo.ExistsEmail(context.Background(), "new@university.edu"))
}

func TestSave_Fail_DuplicateEmail(t *testing.T) {
	repo := newSeededRepo(t)

	_, err := repo.Save(context.Background(), domain.Identity{Name: "Dup", Email: "jane@university.edu", Role: domain.RoleFaculty})

	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSave_Fail_UnknownRole(t *testing.T) {
	repo := newSeededRepo(t)

	_, err := repo.Save(context.Background(), domain.Identity{Name: "X", Email: "x@university.edu", Role: "dean"})

	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestSave_ConcurrentSameEmailOnlyOneWins(t *testing.T) {
	repo := newSeededRepo(t)
	var wg sync.WaitGroup
	results := make(chan error, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Save(context.Background(), domain.Identity{Name: "Race", Email: "race@university.edu", Role: domain.RoleStudent})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, 1, successes)
}

func TestFindByEmailAndRole(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	identity, err := repo.FindByEmailAndRole(ctx, "warden@university.edu", domain.RoleWarden)
	require.NoError(t, err)
	assert.Equal(t, "9", identity.ID)

	_, err = repo.FindByEmailAndRole(ctx, "warden@university.edu", domain.RoleStudent)
	assert.IsType(t, &apperror.NotFoundError{}, err)

	_, err = repo.FindByEmailAndRole(ctx, "ghost@university.edu", domain.RoleStudent)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestList_PreservesInsertionOrder(t *testing.T) {
	repo := newSeededRepo(t)
	seed := identityrepo.DemoDirectory()

	list := repo.List(context.Background())

	require.Len(t, list, len(seed))
	for i := range seed {
		assert.Equal(t, seed[i].Email, list[i].Email)
	}
}
