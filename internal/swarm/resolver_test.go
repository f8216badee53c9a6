package swarm

import (
	"context"
	"errors"
	"testing"
	"time"

	"hivemind/internal/backend"
)

// fakeLister counts list calls and returns a fixed model set.
type fakeLister struct {
	models []backend.ModelInfo
	err    error
	calls  int
}

func (f *fakeLister) ListModels(ctx context.Context) ([]backend.ModelInfo, error) {
	f.calls++
	return f.models, f.err
}

func TestResolve_PreferredAvailable(t *testing.T) {
	lister := &fakeLister{models: []backend.ModelInfo{{Name: "llama3"}, {Name: "tinyllama"}}}
	r := NewModelResolver(lister, "llama3", time.Minute)

	model, fallback := r.Resolve(context.Background(), "tinyllama")
	if model != "tinyllama" || fallback {
		t.Errorf("Resolve = %q/%v, want tinyllama/false", model, fallback)
	}
}

func TestResolve_PreferredMissingFallsBack(t *testing.T) {
	lister := &fakeLister{models: []backend.ModelInfo{{Name: "llama3"}}}
	r := NewModelResolver(lister, "llama3", time.Minute)

	model, fallback := r.Resolve(context.Background(), "mixtral")
	if model != "llama3" || !fallback {
		t.Errorf("Resolve = %q/%v, want llama3/true", model, fallback)
	}
}

func TestResolve_EmptyPreferenceIsNotFallback(t *testing.T) {
	r := NewModelResolver(&fakeLister{}, "llama3", time.Minute)

	model, fallback := r.Resolve(context.Background(), "")
	if model != "llama3" || fallback {
		t.Errorf("Resolve = %q/%v, want llama3/false", model, fallback)
	}
	// No listing needed for an empty preference.
	if r.lister.(*fakeLister).calls != 0 {
		t.Error("empty preference triggered a listing call")
	}
}

func TestResolve_BackendDownTreatsSnapshotEmpty(t *testing.T) {
	lister := &fakeLister{err: errors.New("connection refused")}
	r := NewModelResolver(lister, "llama3", time.Minute)

	model, fallback := r.Resolve(context.Background(), "mixtral")
	if model != "llama3" || !fallback {
		t.Errorf("Resolve = %q/%v, want llama3/true", model, fallback)
	}
}

func TestResolve_SnapshotCachedWithinTTL(t *testing.T) {
	lister := &fakeLister{models: []backend.ModelInfo{{Name: "a"}}}
	r := NewModelResolver(lister, "fallback", 5*time.Second)

	base := time.Now()
	r.now = func() time.Time { return base }

	r.Resolve(context.Background(), "a")
	r.Resolve(context.Background(), "a")
	r.Resolve(context.Background(), "b")
	if lister.calls != 1 {
		t.Errorf("listing called %d times within TTL, want 1", lister.calls)
	}

	// Past the TTL the snapshot is refreshed.
	r.now = func() time.Time { return base.Add(6 * time.Second) }
	r.Resolve(context.Background(), "a")
	if lister.calls != 2 {
		t.Errorf("listing called %d times after TTL expiry, want 2", lister.calls)
	}
}

func TestResolve_NilListerSkipsChecking(t *testing.T) {
	r := NewModelResolver(nil, "fallback", time.Minute)

	model, fallback := r.Resolve(context.Background(), "anything")
	if model != "anything" || fallback {
		t.Errorf("Resolve = %q/%v, want anything/false", model, fallback)
	}
}
