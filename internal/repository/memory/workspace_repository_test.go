package memory

import (
	"testing"
	"time"

	"ai-renamer-be/pkg/workspace"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceRepository_SaveGetDelete(t *testing.T) {
	repo := NewWorkspaceRepository(time.Hour)
	userID := uuid.New()
	store := workspace.NewStore(workspace.Options{})

	_, found := repo.Get(userID)
	assert.False(t, found)

	repo.Save(userID, store)
	got, found := repo.Get(userID)
	require.True(t, found)
	assert.Same(t, store, got)
	assert.Equal(t, 1, repo.Count())

	updates, _ := store.Subscribe()
	<-updates // current snapshot

	repo.Delete(userID)
	_, found = repo.Get(userID)
	assert.False(t, found)

	_, open := <-updates
	assert.False(t, open, "deleting a workspace closes its subscriptions")
}

func TestWorkspaceRepository_ExpiryClosesStore(t *testing.T) {
	repo := NewWorkspaceRepository(50 * time.Millisecond)
	store := workspace.NewStore(workspace.Options{})
	repo.Save(uuid.New(), store)

	updates, _ := store.Subscribe()
	<-updates

	select {
	case _, open := <-updates:
		assert.False(t, open)
	case <-time.After(3 * time.Second):
		t.Fatal("idle workspace was not evicted")
	}
}
