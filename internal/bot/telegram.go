package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/romanzzaa/petrol-price-bot/internal/domain"
	"github.com/romanzzaa/petrol-price-bot/internal/usecase"
)

var _ domain.Messenger = (*Telegram)(nil)

// Telegram - транспорт: long polling входящих апдейтов и отправка сообщений
type Telegram struct {
	api    *tgbotapi.BotAPI
	logger *slog.Logger
}

func NewTelegram(api *tgbotapi.BotAPI, logger *slog.Logger) *Telegram {
	return &Telegram{
		api:    api,
		logger: logger,
	}
}

// Send отправляет текст; withKeyboard прикрепляет клавиатуру с кнопкой цены
func (t *Telegram) Send(chatID int64, text string, withKeyboard bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if withKeyboard {
		msg.ReplyMarkup = MainKeyboard()
	}
	_, err := t.api.Send(msg)
	return err
}

// Start блокируется до отмены ctx. Каждый апдейт обрабатывается в своей горутине,
// при остановке дожидаемся уже начатых.
func (t *Telegram) Start(ctx context.Context, router *Router) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.api.GetUpdatesChan(u)
	var wg sync.WaitGroup

	defer func() {
		t.api.StopReceivingUpdates()
		wg.Wait()
	}()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			ev, ok := ToEvent(update)
			if !ok {
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				router.Handle(ctx, ev)
			}()
		case <-ctx.Done():
			return
		}
	}
}

// ToEvent переводит апдейт Telegram в событие домена.
// Неинтересные апдейты (колбэки, стикеры, прочие команды) отбрасываются.
func ToEvent(update tgbotapi.Update) (domain.InboundEvent, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return domain.InboundEvent{}, false
	}

	ev := domain.InboundEvent{
		ChatID:      msg.Chat.ID,
		DisplayName: msg.Chat.FirstName,
		Text:        msg.Text,
		Timestamp:   msg.Time(),
	}
	if ev.DisplayName == "" && msg.From != nil {
		ev.DisplayName = msg.From.FirstName
	}
	if msg.Date == 0 {
		ev.Timestamp = time.Now()
	}

	switch {
	case msg.IsCommand() && msg.Command() == "start":
		ev.Kind = domain.EventStart
	case msg.IsCommand():
		// Других команд нет - отвечаем подсказкой
		ev.Kind = domain.EventText
	case msg.Text != "":
		ev.Kind = domain.EventText
	default:
		return domain.InboundEvent{}, false
	}
	return ev, true
}

func MainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(usecase.BtnCurrentPrice),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
