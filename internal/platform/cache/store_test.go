package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}

	store.Set(ctx, "k", "v")
	got, ok := store.Get(ctx, "k")
	if !ok || got != "v" {
		t.Fatalf("expected hit with value v, got %v (%v)", got, ok)
	}

	store.Delete(ctx, "k")
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)
	store.Set(ctx, "k", 1)

	time.Sleep(25 * time.Millisecond)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "leaderboard:c1:overall", 1)
	store.Set(ctx, "leaderboard:c1:category", 2)
	store.Set(ctx, "leaderboard:c2:overall", 3)

	store.DeletePrefix(ctx, "leaderboard:c1:")

	if _, ok := store.Get(ctx, "leaderboard:c1:overall"); ok {
		t.Fatalf("expected c1 overall to be dropped")
	}
	if _, ok := store.Get(ctx, "leaderboard:c1:category"); ok {
		t.Fatalf("expected c1 category to be dropped")
	}
	if _, ok := store.Get(ctx, "leaderboard:c2:overall"); !ok {
		t.Fatalf("expected c2 entry to survive")
	}
}

func TestStore_GetOrLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		got, err := store.GetOrLoad(ctx, "k", loader)
		if err != nil {
			t.Fatalf("GetOrLoad error: %v", err)
		}
		if got != "loaded" {
			t.Fatalf("unexpected value %v", got)
		}
	}
	if loads != 1 {
		t.Fatalf("expected a single load, got %d", loads)
	}
}

func TestStore_GetOrLoad_ErrorNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, fmt.Errorf("transient")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(ctx, "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	got, err := store.GetOrLoad(ctx, "k", loader)
	if err != nil || got != "ok" {
		t.Fatalf("expected retry to succeed, got %v (%v)", got, err)
	}
}
