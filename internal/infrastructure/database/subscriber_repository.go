package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/romanzzaa/petrol-price-bot/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS subscribers (
		chat_id      BIGINT PRIMARY KEY,
		display_name TEXT NOT NULL,
		joined_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

var _ domain.SubscriberStore = (*SubscriberRepository)(nil)

type SubscriberRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewSubscriberRepository(db *DB, logger *slog.Logger) *SubscriberRepository {
	return &SubscriberRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema создает таблицу, если ее еще нет. Безопасно вызывать на каждом старте.
func (r *SubscriberRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create subscribers table: %w", err)
	}
	return nil
}

// Insert - insert-if-absent. Существующую строку не трогаем.
func (r *SubscriberRepository) Insert(ctx context.Context, sub domain.Subscriber) (bool, error) {
	query := `
		INSERT INTO subscribers (chat_id, display_name, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, sub.ChatID, sub.DisplayName, sub.JoinedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert subscriber: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *SubscriberRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT chat_id FROM subscribers`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db scan error: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count - для логов на старте и сидера
func (r *SubscriberRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return n, nil
}
