package activityrepo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventra/internal/domain"
	"eventra/internal/repository/activityrepo"
)

func TestMemoryRepository_RecordStampsEntry(t *testing.T) {
	repo := activityrepo.NewMemoryRepository(10)

	entry, err := repo.Record(context.Background(), domain.ActivityEntry{Action: domain.ActionLogout, Actor: "jane@university.edu"})

	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestMemoryRepository_ListNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	repo := activityrepo.NewMemoryRepository(10)
	for i := 0; i < 5; i++ {
		_, err := repo.Record(ctx, domain.ActivityEntry{Action: domain.ActionLoginSucceeded, Actor: fmt.Sprintf("user%d@university.edu", i)})
		require.NoError(t, err)
	}

	entries, err := repo.List(ctx, 2)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "user4@university.edu", entries[0].Actor)
	assert.Equal(t, "user3@university.edu", entries[1].Actor)
}

func TestMemoryRepository_DropsOldestBeyondCapacity(t *testing.T) {
	ctx := context.Background()
	repo := activityrepo.NewMemoryRepository(3)
	for i := 0; i < 5; i++ {
		_, err := repo.Record(ctx, domain.ActivityEntry{Action: domain.ActionLogout, Actor: fmt.Sprintf("u%d", i)})
		require.NoError(t, err)
	}

	entries, err := repo.List(ctx, 0)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "u4", entries[0].Actor)
	assert.Equal(t, "u2", entries[2].Actor)
}

func TestMemoryRepository_NonPositiveLimitReturnsAll(t *testing.T) {
	ctx := context.Background()
	repo := activityrepo.NewMemoryRepository(10)
	for i := 0; i < 4; i++ {
		_, err := repo.Record(ctx, domain.ActivityEntry{Action: domain.ActionLogout, Actor: fmt.Sprintf("u%d", i)})
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	negative, err := repo.List(ctx, -1)
	require.NoError(t, err)
	assert.Len(t, negative, 4)
}
