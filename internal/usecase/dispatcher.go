package usecase

import (
	"context"
	"log/slog"

	"github.com/romanzzaa/petrol-price-bot/internal/domain"
)

// DeliveryResult - итог отправки одному чату. Err == nil означает успех.
type DeliveryResult struct {
	ChatID int64
	Err    error
}

type BroadcastReport struct {
	Results []DeliveryResult
}

func (r BroadcastReport) Sent() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

func (r BroadcastReport) Failed() int { return len(r.Results) - r.Sent() }

// Dispatcher рассылает одно сообщение по снимку списка подписчиков.
// Ошибка одного чата (бот заблокирован, чат удален) не мешает остальным.
type Dispatcher struct {
	messenger domain.Messenger
	logger    *slog.Logger
}

func NewDispatcher(messenger domain.Messenger, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		logger:    logger,
	}
}

func (d *Dispatcher) Broadcast(ctx context.Context, ids []int64, text string) BroadcastReport {
	report := BroadcastReport{Results: make([]DeliveryResult, 0, len(ids))}

	for _, id := range ids {
		// Отмена контекста - единственная причина не пытаться отправить
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, DeliveryResult{
				ChatID: id,
				Err:    &domain.DeliveryError{ChatID: id, Err: err},
			})
			continue
		}

		res := DeliveryResult{ChatID: id}
		if err := d.messenger.Send(id, text, false); err != nil {
			res.Err = &domain.DeliveryError{ChatID: id, Err: err}
			d.logger.Warn("Delivery failed",
				slog.Int64("chat_id", id),
				slog.String("error", err.Error()))
		}
		report.Results = append(report.Results, res)
	}

	d.logger.Info("Broadcast finished",
		slog.Int("sent", report.Sent()),
		slog.Int("failed", report.Failed()))
	return report
}
