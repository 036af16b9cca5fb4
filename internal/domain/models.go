package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceStep - минимальное изменение цены, о котором стоит сообщать подписчикам (1 копейка)
var PriceStep = decimal.New(1, -2)

// --- Value Objects ---

// Price - цена за литр. Неотрицательная, сравнивается с точностью до 0.01
type Price struct {
	value decimal.Decimal
}

// NewPrice оборачивает decimal. Отрицательные значения ценой не считаются.
func NewPrice(v decimal.Decimal) (Price, error) {
	if v.IsNegative() {
		return Price{}, ErrInvalidPriceFormat
	}
	return Price{value: v}, nil
}

// MustPrice - для констант и тестов
func MustPrice(s string) Price {
	p, err := NewPrice(decimal.RequireFromString(s))
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) Decimal() decimal.Decimal { return p.value }

// String печатает цену всегда с двумя знаками: 54.30
func (p Price) String() string { return p.value.StringFixed(2) }

// Delta - модуль разницы, округленный до копеек (half-up).
func (p Price) Delta(other Price) decimal.Decimal {
	return p.value.Sub(other.value).Abs().Round(2)
}

// --- Entities ---

// Subscriber - чат, получающий уведомления об изменении цены
type Subscriber struct {
	ChatID      int64     `json:"chat_id"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}

// --- Inbound events (transport -> router) ---

type EventKind string

const (
	EventStart EventKind = "START"
	EventText  EventKind = "TEXT"
)

// InboundEvent - то, что транспорт отдает роутеру команд
type InboundEvent struct {
	Kind        EventKind
	ChatID      int64
	DisplayName string
	Text        string
	Timestamp   time.Time
}
