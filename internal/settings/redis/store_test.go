package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/tamzrod/jackdaw/internal/settings"
	"github.com/tamzrod/jackdaw/internal/settings/redis"
	"github.com/tamzrod/jackdaw/internal/settings/settingstest"
)

func newServer(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr
}

func TestRedisStore_Contract(t *testing.T) {
	mr := newServer(t)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client)
	t.Cleanup(func() { store.Close() })

	settingstest.RunStoreContract(t, store)
}

func TestRedisStore_PrefixIsolatesNodes(t *testing.T) {
	mr := newServer(t)
	ctx := context.Background()

	a := redis.New(mr.Addr(), "", 0, redis.WithPrefix("node-a:"))
	b := redis.New(mr.Addr(), "", 0, redis.WithPrefix("node-b:"))
	t.Cleanup(func() { a.Close(); b.Close() })

	if err := settings.SetUint8(ctx, a, settings.KeyChannel, 15); err != nil {
		t.Fatalf("SetUint8: %v", err)
	}

	if _, err := b.Get(ctx, settings.KeyChannel); err != settings.ErrNotFound {
		t.Fatalf("expected ErrNotFound under another prefix, got %v", err)
	}
	if !mr.Exists("node-a:4348") {
		t.Fatalf("expected raw key node-a:4348 on the server, keys=%v", mr.Keys())
	}
}
