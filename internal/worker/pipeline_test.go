package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/romanzzaa/petrol-price-bot/internal/domain"
	"github.com/romanzzaa/petrol-price-bot/internal/infrastructure/fuelprices"
	"github.com/romanzzaa/petrol-price-bot/internal/testutils"
	"github.com/romanzzaa/petrol-price-bot/internal/usecase"
	"github.com/romanzzaa/petrol-price-bot/internal/worker"
)

func page(price string) testutils.FetchResponse {
	return testutils.FetchResponse{
		Body: `<div class="fuel-card border-ai92"><span itemprop="price">` + price + `</span></div>`,
	}
}

// Таймер гоняет монитор тиками вручную, между тиками подписываются новые чаты
func TestPipeline_TicksDriveMonitor(t *testing.T) {
	logger := testutils.NopLogger()
	fetcher := testutils.NewMockFetcher(page("54,30"))
	messenger := testutils.NewMockMessenger()
	store := testutils.NewMockStore()
	registry := usecase.NewRegistry(store, logger)

	monitor := usecase.NewPriceMonitor(
		fetcher,
		fuelprices.NewExtractor("", ""),
		registry,
		usecase.NewDispatcher(messenger, logger),
		usecase.Source{URL: "https://example.test"},
		logger,
	)

	outcomes := make(chan usecase.CycleOutcome, 10)
	s := worker.NewScheduler(time.Hour, func(ctx context.Context) {
		outcomes <- monitor.RunCycle(ctx).Outcome
	}, logger)

	ticks := make(chan time.Time)
	done := make(chan struct{})
	go func() {
		s.RunTicks(context.Background(), ticks)
		close(done)
	}()

	if got := <-outcomes; got != usecase.CycleBaseline {
		t.Fatalf("First run: expected BASELINE, got %s", got)
	}

	registry.Add(context.Background(), 1, "a", time.Now())
	registry.Add(context.Background(), 2, "b", time.Now())

	fetcher.Push(page("54,10"))
	ticks <- time.Now()
	if got := <-outcomes; got != usecase.CycleChanged {
		t.Fatalf("Second run: expected CHANGED, got %s", got)
	}

	fetcher.Push(testutils.FetchResponse{Err: &domain.FetchError{URL: "x", StatusCode: 500}})
	ticks <- time.Now()
	if got := <-outcomes; got != usecase.CycleSkipped {
		t.Fatalf("Third run: expected SKIPPED, got %s", got)
	}

	close(ticks)
	<-done

	if messenger.Count() != 2 {
		t.Errorf("Expected one notification per subscriber, got %d", messenger.Count())
	}
}
