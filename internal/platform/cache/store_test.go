package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	if _, ok := store.Get(ctx, "court:c1"); ok {
		t.Fatal("expected miss on empty store")
	}

	store.Set(ctx, "court:c1", "Rucker Park")
	got, ok := store.Get(ctx, "court:c1")
	if !ok || got.(string) != "Rucker Park" {
		t.Fatalf("expected hit, got %v ok=%t", got, ok)
	}

	store.Delete(ctx, "court:c1")
	if _, ok := store.Get(ctx, "court:c1"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestStore_GetOrLoad_LoadsOncePerKey(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	var loads atomic.Int64
	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(5 * time.Millisecond)
		return "profile", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.GetOrLoad(ctx, "profile:p1", loader); err != nil {
				t.Errorf("load: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected single load, got %d", got)
	}
}

func TestStore_GetOrLoad_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	boom := errors.New("db down")
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(ctx, "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	got, err := store.GetOrLoad(ctx, "k", loader)
	if err != nil || got.(string) != "ok" {
		t.Fatalf("expected retry to succeed, got %v err=%v", got, err)
	}
}
