package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/romanzzaa/petrol-price-bot/internal/domain"
)

// CycleOutcome - чем закончился один прогон fetch -> parse -> compare
type CycleOutcome string

const (
	CycleSkipped   CycleOutcome = "SKIPPED"   // ошибка загрузки или разбора, состояние не тронуто
	CycleBaseline  CycleOutcome = "BASELINE"  // первая цена, запомнили молча
	CycleUnchanged CycleOutcome = "UNCHANGED" // разница меньше копейки
	CycleChanged   CycleOutcome = "CHANGED"   // цена обновлена, уведомления разосланы
)

type CycleResult struct {
	Outcome CycleOutcome
	Price   domain.Price
	Delta   string
	Err     error
	Report  BroadcastReport
}

type broadcaster interface {
	Broadcast(ctx context.Context, ids []int64, text string) BroadcastReport
}

// Source - откуда и с какими заголовками брать страницу
type Source struct {
	URL     string
	Headers map[string]string
}

var _ domain.PriceQuerier = (*PriceMonitor)(nil)

// PriceMonitor владеет последней известной ценой.
// Сеть и разбор идут без замка, под замком только сравнение и замена цены.
type PriceMonitor struct {
	fetcher    domain.PageFetcher
	extractor  domain.PriceExtractor
	registry   domain.SubscriberRegistry
	dispatcher broadcaster
	source     Source
	logger     *slog.Logger

	// --- State ---
	current  domain.Price
	tracking bool
	mu       sync.RWMutex
}

func NewPriceMonitor(
	fetcher domain.PageFetcher,
	extractor domain.PriceExtractor,
	registry domain.SubscriberRegistry,
	dispatcher broadcaster,
	source Source,
	logger *slog.Logger,
) *PriceMonitor {
	return &PriceMonitor{
		fetcher:    fetcher,
		extractor:  extractor,
		registry:   registry,
		dispatcher: dispatcher,
		source:     source,
		logger:     logger,
	}
}

// Current - последняя отслеживаемая цена. false, пока не было ни одного удачного цикла.
func (m *PriceMonitor) Current() (domain.Price, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.tracking
}

// Query - разовый запрос по кнопке. Состояние монитора не меняет.
func (m *PriceMonitor) Query(ctx context.Context) (domain.Price, error) {
	return m.fetchPrice(ctx)
}

// RunCycle - один тик таймера. Никогда не паникует и не возвращает ошибку наружу:
// неудачный цикл просто пропускается, следующий тик начнет заново.
func (m *PriceMonitor) RunCycle(ctx context.Context) CycleResult {
	price, err := m.fetchPrice(ctx)
	if err != nil {
		m.logFailure(err)
		return CycleResult{Outcome: CycleSkipped, Err: err}
	}

	m.mu.Lock()
	if !m.tracking {
		m.current = price
		m.tracking = true
		m.mu.Unlock()

		m.logger.Info("Baseline price recorded", slog.String("price", price.String()))
		return CycleResult{Outcome: CycleBaseline, Price: price}
	}

	delta := price.Delta(m.current)
	if delta.LessThan(domain.PriceStep) {
		m.mu.Unlock()

		m.logger.Debug("Price unchanged", slog.String("price", price.String()))
		return CycleResult{Outcome: CycleUnchanged, Price: price, Delta: delta.StringFixed(2)}
	}

	previous := m.current
	m.current = price
	m.mu.Unlock()

	m.logger.Info("Price changed",
		slog.String("from", previous.String()),
		slog.String("to", price.String()),
		slog.String("delta", delta.StringFixed(2)))

	result := CycleResult{Outcome: CycleChanged, Price: price, Delta: delta.StringFixed(2)}

	// Свежий снимок подписчиков на каждое изменение
	ids, err := m.registry.ListAll(ctx)
	if err != nil {
		m.logger.Error("Failed to load subscribers, notification dropped", slog.String("error", err.Error()))
		result.Err = err
		return result
	}

	result.Report = m.dispatcher.Broadcast(ctx, ids, ChangeMessage(delta.StringFixed(2), price))
	return result
}

func (m *PriceMonitor) fetchPrice(ctx context.Context) (domain.Price, error) {
	raw, err := m.fetcher.FetchPage(ctx, m.source.URL, m.source.Headers)
	if err != nil {
		return domain.Price{}, err
	}

	price, err := m.extractor.Extract(raw)
	if err != nil {
		return domain.Price{}, fmt.Errorf("failed to extract price: %w", err)
	}
	return price, nil
}

func (m *PriceMonitor) logFailure(err error) {
	var fe *domain.FetchError
	switch {
	case errors.As(err, &fe):
		m.logger.Warn("Price fetch failed, cycle skipped",
			slog.Int("status", fe.StatusCode),
			slog.String("error", err.Error()))
	case errors.Is(err, domain.ErrPriceNotFound), errors.Is(err, domain.ErrInvalidPriceFormat):
		// Скорее всего поменялась верстка сайта
		m.logger.Error("Price parse failed, cycle skipped", slog.String("error", err.Error()))
	default:
		m.logger.Error("Price cycle failed", slog.String("error", err.Error()))
	}
}
