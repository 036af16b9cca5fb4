package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/romanzzaa/petrol-price-bot/internal/domain"
)

const subscribersKey = "petrolbot:subscribers"

// Compile-time check to ensure RedisSubscriberStore implements SubscriberStore
var _ domain.SubscriberStore = (*RedisSubscriberStore)(nil)

// RedisSubscriberStore хранит подписчиков в одном hash: поле = chat_id, значение = JSON.
// HSETNX дает insert-if-absent атомарно на стороне Redis.
type RedisSubscriberStore struct {
	client *redis.Client
}

func NewRedisSubscriberStore(client *redis.Client) *RedisSubscriberStore {
	return &RedisSubscriberStore{client: client}
}

func (s *RedisSubscriberStore) Insert(ctx context.Context, sub domain.Subscriber) (bool, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return false, err
	}

	ok, err := s.client.HSetNX(ctx, subscribersKey, strconv.FormatInt(sub.ChatID, 10), payload).Result()
	if err != nil {
		return false, fmt.Errorf("redis hsetnx: %w", err)
	}
	return ok, nil
}

func (s *RedisSubscriberStore) ListIDs(ctx context.Context) ([]int64, error) {
	fields, err := s.client.HKeys(ctx, subscribersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hkeys: %w", err)
	}

	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupted subscriber key %q: %w", f, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Get - полная запись подписчика, nil если нет
func (s *RedisSubscriberStore) Get(ctx context.Context, chatID int64) (*domain.Subscriber, error) {
	raw, err := s.client.HGet(ctx, subscribersKey, strconv.FormatInt(chatID, 10)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget: %w", err)
	}

	var sub domain.Subscriber
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return nil, fmt.Errorf("decode subscriber %d: %w", chatID, err)
	}
	return &sub, nil
}
