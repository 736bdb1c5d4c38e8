package memory

import (
	"time"

	"ai-renamer-be/pkg/workspace"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// WorkspaceRepository keeps one live workspace per user. Entries expire after
// idleTTL without access and the evicted store is closed.
type WorkspaceRepository struct {
	cache *cache.Cache
}

func NewWorkspaceRepository(idleTTL time.Duration) *WorkspaceRepository {
	cleanup := idleTTL / 3
	if cleanup < time.Second {
		cleanup = time.Second
	}
	c := cache.New(idleTTL, cleanup)
	c.OnEvicted(func(_ string, v interface{}) {
		if s, ok := v.(*workspace.Store); ok {
			s.Close()
		}
	})
	return &WorkspaceRepository{cache: c}
}

func (r *WorkspaceRepository) Save(userID uuid.UUID, store *workspace.Store) {
	r.cache.Set(userID.String(), store, cache.DefaultExpiration)
}

// Get refreshes the idle timer on every hit.
func (r *WorkspaceRepository) Get(userID uuid.UUID) (*workspace.Store, bool) {
	key := userID.String()
	x, found := r.cache.Get(key)
	if !found {
		return nil, false
	}
	r.cache.Set(key, x, cache.DefaultExpiration)
	return x.(*workspace.Store), true
}

func (r *WorkspaceRepository) Delete(userID uuid.UUID) {
	r.cache.Delete(userID.String())
}

func (r *WorkspaceRepository) Count() int {
	return r.cache.ItemCount()
}
