package worker

import (
	"context"
	"log/slog"
	"time"
)

// Job - одна итерация периодической задачи
type Job func(ctx context.Context)

// Scheduler запускает Job сразу и затем на каждый тик.
// Тики, пришедшие пока Job еще работает, не копятся: time.Ticker их роняет,
// так что два прогона никогда не идут одновременно.
type Scheduler struct {
	interval time.Duration
	job      Job
	logger   *slog.Logger
}

func NewScheduler(interval time.Duration, job Job, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		job:      job,
		logger:   logger,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Scheduler started", slog.String("interval", s.interval.String()))
	s.RunTicks(ctx, ticker.C)
}

// RunTicks - то же самое, но тики приходят снаружи. Блокируется до отмены ctx
// или закрытия канала.
func (s *Scheduler) RunTicks(ctx context.Context, ticks <-chan time.Time) {
	s.job(ctx)

	for {
		select {
		case _, ok := <-ticks:
			if !ok {
				return
			}
			s.job(ctx)
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		}
	}
}
