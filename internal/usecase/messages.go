package usecase

import (
	"fmt"

	"github.com/romanzzaa/petrol-price-bot/internal/domain"
)

// Тексты, которые видит пользователь
const (
	BtnCurrentPrice = "⛽ Узнать актуальную цену"

	MsgHelp        = "Нажмите кнопку \"" + BtnCurrentPrice + "\", чтобы узнать актуальную цену."
	MsgUnavailable = "⚠️ Не удалось получить цену. Попробуйте позже."
)

func ChangeMessage(delta string, price domain.Price) string {
	return fmt.Sprintf("🔔 Средняя цена на АИ-95 в Санкт-Петербурге изменилась на %s и составляет %s р.", delta, price)
}

func PriceMessage(price domain.Price) string {
	return fmt.Sprintf("⛽ Актуальная средняя цена на АИ-95 в Санкт-Петербурге: %s р.", price)
}

func UnavailableMessage(last domain.Price, known bool) string {
	if !known {
		return MsgUnavailable
	}
	return fmt.Sprintf("%s\nПоследняя известная цена: %s р.", MsgUnavailable, last)
}

func WelcomeMessage(name string) string {
	return fmt.Sprintf("👋 Спасибо, что включили меня, %s!\nЯ сообщу, как только цена на АИ-95 изменится.", name)
}
