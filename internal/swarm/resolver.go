package swarm

import (
	"context"
	"sync"
	"time"

	"hivemind/internal/backend"
)

// DefaultCacheTTL is how long one availability snapshot stays valid.
const DefaultCacheTTL = 5 * time.Second

// ModelResolver resolves each agent's preferred model against a cached
// snapshot of the models the backend reports as installed. Unavailable
// preferred models fall back to the configured default model.
type ModelResolver struct {
	lister   backend.ModelLister
	fallback string
	ttl      time.Duration

	mu        sync.Mutex
	available map[string]bool
	fetchedAt time.Time

	now func() time.Time
}

// NewModelResolver creates a resolver. A nil lister disables
// availability checking: every preferred model resolves as-is.
func NewModelResolver(lister backend.ModelLister, fallback string, ttl time.Duration) *ModelResolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ModelResolver{
		lister:   lister,
		fallback: fallback,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Resolve returns the model to use for an agent preferring the given
// model, and whether the fallback was substituted. An empty preference
// means the agent has no opinion and gets the fallback without counting
// as a substitution.
func (r *ModelResolver) Resolve(ctx context.Context, preferred string) (model string, fallbackUsed bool) {
	if preferred == "" {
		return r.fallback, false
	}
	if r.lister == nil || preferred == r.fallback {
		return preferred, false
	}
	if r.snapshot(ctx)[preferred] {
		return preferred, false
	}
	return r.fallback, true
}

// snapshot returns the availability set, refreshing it when stale.
// A failed listing yields an empty set, so everything falls back.
func (r *ModelResolver) snapshot(ctx context.Context) map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.available != nil && r.now().Sub(r.fetchedAt) < r.ttl {
		return r.available
	}

	available := make(map[string]bool)
	if models, err := r.lister.ListModels(ctx); err == nil {
		for _, m := range models {
			available[m.Name] = true
		}
	}
	r.available = available
	r.fetchedAt = r.now()
	return r.available
}
