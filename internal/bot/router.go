package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/romanzzaa/petrol-price-bot/internal/domain"
	"github.com/romanzzaa/petrol-price-bot/internal/usecase"
)

// Router разбирает входящие события: /start, кнопка цены, все остальное - подсказка.
// Своего состояния не хранит.
type Router struct {
	registry  domain.SubscriberRegistry
	prices    domain.PriceQuerier
	messenger domain.Messenger
	logger    *slog.Logger
}

func NewRouter(
	registry domain.SubscriberRegistry,
	prices domain.PriceQuerier,
	messenger domain.Messenger,
	logger *slog.Logger,
) *Router {
	return &Router{
		registry:  registry,
		prices:    prices,
		messenger: messenger,
		logger:    logger,
	}
}

func (r *Router) Handle(ctx context.Context, ev domain.InboundEvent) {
	switch ev.Kind {
	case domain.EventStart:
		r.cmdStart(ctx, ev)
	case domain.EventText:
		if isPriceTrigger(ev.Text) {
			r.cmdPrice(ctx, ev)
			return
		}
		r.reply(ev.ChatID, usecase.MsgHelp, true)
	default:
		r.logger.Warn("Unknown event kind", slog.String("kind", string(ev.Kind)))
	}
}

// --- Commands ---

func (r *Router) cmdStart(ctx context.Context, ev domain.InboundEvent) {
	r.register(ctx, ev)

	name := ev.DisplayName
	if strings.TrimSpace(name) == "" {
		name = "друг"
	}
	r.reply(ev.ChatID, usecase.WelcomeMessage(name), true)
}

func (r *Router) cmdPrice(ctx context.Context, ev domain.InboundEvent) {
	// Нажатие кнопки тоже подписывает: пользователь мог появиться до /start
	r.register(ctx, ev)

	price, err := r.prices.Query(ctx)
	if err != nil {
		r.logger.Warn("On-demand price query failed",
			slog.Int64("chat_id", ev.ChatID),
			slog.String("error", err.Error()))

		last, known := r.prices.Current()
		r.reply(ev.ChatID, usecase.UnavailableMessage(last, known), true)
		return
	}

	r.reply(ev.ChatID, usecase.PriceMessage(price), true)
}

// --- Helpers ---

func (r *Router) register(ctx context.Context, ev domain.InboundEvent) {
	if _, err := r.registry.Add(ctx, ev.ChatID, ev.DisplayName, ev.Timestamp); err != nil {
		// Ответить пользователю все равно нужно, подписка повторится при следующем сообщении
		r.logger.Error("DB error", slog.Int64("chat_id", ev.ChatID), slog.String("error", err.Error()))
	}
}

func (r *Router) reply(chatID int64, text string, withKeyboard bool) {
	if err := r.messenger.Send(chatID, text, withKeyboard); err != nil {
		r.logger.Warn("Reply failed", slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
	}
}

func isPriceTrigger(text string) bool {
	return strings.TrimSpace(text) == usecase.BtnCurrentPrice
}
