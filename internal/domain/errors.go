package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPriceNotFound - на странице нет ожидаемого блока с ценой (верстка поменялась)
	ErrPriceNotFound = errors.New("price element not found")
	// ErrInvalidPriceFormat - блок найден, но в нем не число
	ErrInvalidPriceFormat = errors.New("invalid price format")
)

// FetchError - ошибка сети или не-2xx ответ источника.
// StatusCode == 0 означает, что до HTTP ответа дело не дошло.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DeliveryError - не удалось доставить сообщение конкретному чату
type DeliveryError struct {
	ChatID int64
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to chat %d: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
