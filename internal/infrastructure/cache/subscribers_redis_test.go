package cache_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/romanzzaa/petrol-price-bot/internal/domain"
	"github.com/romanzzaa/petrol-price-bot/internal/infrastructure/cache"
)

func setup(t *testing.T) (*cache.RedisSubscriberStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRedisSubscriberStore(client), mr
}

func TestRedisStore_InsertIdempotent(t *testing.T) {
	store, _ := setup(t)
	ctx := context.Background()
	joined := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	ok, err := store.Insert(ctx, domain.Subscriber{ChatID: 42, DisplayName: "Иван", JoinedAt: joined})
	if err != nil || !ok {
		t.Fatalf("First insert: ok=%v err=%v", ok, err)
	}

	ok, err = store.Insert(ctx, domain.Subscriber{ChatID: 42, DisplayName: "Петр", JoinedAt: joined.Add(time.Hour)})
	if err != nil || ok {
		t.Fatalf("Duplicate insert: ok=%v err=%v", ok, err)
	}

	sub, err := store.Get(ctx, 42)
	if err != nil || sub == nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sub.DisplayName != "Иван" || !sub.JoinedAt.Equal(joined) {
		t.Errorf("Duplicate insert must not overwrite: %+v", sub)
	}
}

func TestRedisStore_ListIDs(t *testing.T) {
	store, _ := setup(t)
	ctx := context.Background()

	for _, id := range []int64{3, 1, 2} {
		if _, err := store.Insert(ctx, domain.Subscriber{ChatID: id, DisplayName: "x"}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	ids, err := store.ListIDs(ctx)
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) != 3 || ids[0] != 1 || ids[2] != 3 {
		t.Errorf("Unexpected ids %v", ids)
	}
}

func TestRedisStore_GetMissing(t *testing.T) {
	store, _ := setup(t)

	sub, err := store.Get(context.Background(), 99)
	if err != nil || sub != nil {
		t.Errorf("Expected nil, nil; got %v, %v", sub, err)
	}
}

func TestRedisStore_Unavailable(t *testing.T) {
	store, mr := setup(t)
	mr.Close()

	if _, err := store.ListIDs(context.Background()); err == nil {
		t.Error("Expected error when redis is down")
	}
}
