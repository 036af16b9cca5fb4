package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/romanzzaa/petrol-price-bot/internal/domain"
)

const unknownName = "Unknown"

var _ domain.SubscriberRegistry = (*Registry)(nil)

// Registry - реестр подписчиков. Кэша нет: каждый ListAll идет в хранилище.
type Registry struct {
	store  domain.SubscriberStore
	logger *slog.Logger
}

func NewRegistry(store domain.SubscriberStore, logger *slog.Logger) *Registry {
	return &Registry{
		store:  store,
		logger: logger,
	}
}

// Add идемпотентен: повторный chatID не перезаписывает имя и дату.
func (r *Registry) Add(ctx context.Context, chatID int64, displayName string, joinedAt time.Time) (bool, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = unknownName
	}
	if joinedAt.IsZero() {
		joinedAt = time.Now()
	}

	inserted, err := r.store.Insert(ctx, domain.Subscriber{
		ChatID:      chatID,
		DisplayName: name,
		JoinedAt:    joinedAt.UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to add subscriber %d: %w", chatID, err)
	}

	if inserted {
		r.logger.Info("Subscriber added",
			slog.Int64("chat_id", chatID),
			slog.String("name", name))
	}
	return inserted, nil
}

func (r *Registry) ListAll(ctx context.Context) ([]int64, error) {
	ids, err := r.store.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return ids, nil
}
