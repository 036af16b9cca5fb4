package domain

import (
	"context"
	"time"
)

// PageFetcher - загрузка сырой страницы с ценой
type PageFetcher interface {
	// Не-2xx ответ должен возвращаться как *FetchError
	FetchPage(ctx context.Context, url string, headers map[string]string) (string, error)
}

// PriceExtractor - разбор сырой страницы в цену. Без побочных эффектов.
type PriceExtractor interface {
	Extract(rawHTML string) (Price, error)
}

// SubscriberStore - постоянное хранилище подписчиков (Postgres или Redis)
type SubscriberStore interface {
	// Insert-if-absent. Возвращает true, если запись создана.
	Insert(ctx context.Context, sub Subscriber) (bool, error)

	// Все chat_id, порядок не важен
	ListIDs(ctx context.Context) ([]int64, error)
}

// Messenger - исходящие сообщения в Telegram
type Messenger interface {
	Send(chatID int64, text string, withKeyboard bool) error
}

// SubscriberRegistry - то, что нужно роутеру и монитору от реестра
type SubscriberRegistry interface {
	Add(ctx context.Context, chatID int64, displayName string, joinedAt time.Time) (bool, error)
	ListAll(ctx context.Context) ([]int64, error)
}

// PriceQuerier - разовый запрос цены по кнопке
type PriceQuerier interface {
	Query(ctx context.Context) (Price, error)
	Current() (Price, bool)
}
