package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/romanzzaa/petrol-price-bot/internal/testutils"
	"github.com/romanzzaa/petrol-price-bot/internal/usecase"
)

func TestRegistry_AddIsIdempotent(t *testing.T) {
	store := testutils.NewMockStore()
	r := usecase.NewRegistry(store, testutils.NopLogger())
	ctx := context.Background()
	joined := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	inserted, err := r.Add(ctx, 42, "Иван", joined)
	if err != nil || !inserted {
		t.Fatalf("First add: inserted=%v err=%v", inserted, err)
	}

	inserted, err = r.Add(ctx, 42, "Другое имя", joined.Add(time.Hour))
	if err != nil || inserted {
		t.Fatalf("Second add: inserted=%v err=%v", inserted, err)
	}

	if len(store.Rows) != 1 {
		t.Fatalf("Expected one row, got %d", len(store.Rows))
	}
	row := store.Rows[42]
	if row.DisplayName != "Иван" || !row.JoinedAt.Equal(joined) {
		t.Errorf("Duplicate add must not update the row: %+v", row)
	}
}

func TestRegistry_DefaultsName(t *testing.T) {
	store := testutils.NewMockStore()
	r := usecase.NewRegistry(store, testutils.NopLogger())

	if _, err := r.Add(context.Background(), 7, "   ", time.Time{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	row := store.Rows[7]
	if row.DisplayName != "Unknown" {
		t.Errorf("Expected Unknown, got %q", row.DisplayName)
	}
	if row.JoinedAt.IsZero() {
		t.Error("JoinedAt should default to now")
	}
}

func TestRegistry_ListAllReadsFreshSnapshot(t *testing.T) {
	store := testutils.NewMockStore()
	r := usecase.NewRegistry(store, testutils.NopLogger())
	ctx := context.Background()

	r.Add(ctx, 1, "a", time.Now())
	ids, _ := r.ListAll(ctx)
	if len(ids) != 1 {
		t.Fatalf("Expected 1 id, got %d", len(ids))
	}

	r.Add(ctx, 2, "b", time.Now())
	ids, _ = r.ListAll(ctx)
	if len(ids) != 2 {
		t.Errorf("Registry must not cache, expected 2 ids, got %d", len(ids))
	}
}
