package fuelprices

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/romanzzaa/petrol-price-bot/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// Карточка АИ-95 на fuelprices.ru (класс border-ai92 - так на сайте)
	DefaultCardSelector  = "div.fuel-card.border-ai92"
	DefaultPriceSelector = `span[itemprop="price"]`
)

var _ domain.PriceExtractor = (*Extractor)(nil)

// Extractor достает цену из верстки по паре CSS-селекторов: карточка и цена внутри нее
type Extractor struct {
	cardSelector  string
	priceSelector string
}

func NewExtractor(cardSelector, priceSelector string) *Extractor {
	if cardSelector == "" {
		cardSelector = DefaultCardSelector
	}
	if priceSelector == "" {
		priceSelector = DefaultPriceSelector
	}
	return &Extractor{
		cardSelector:  cardSelector,
		priceSelector: priceSelector,
	}
}

func (e *Extractor) Extract(rawHTML string) (domain.Price, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return domain.Price{}, fmt.Errorf("%w: %v", domain.ErrPriceNotFound, err)
	}

	card := doc.Find(e.cardSelector).First()
	if card.Length() == 0 {
		return domain.Price{}, fmt.Errorf("%w: no %q", domain.ErrPriceNotFound, e.cardSelector)
	}

	priceNode := card.Find(e.priceSelector).First()
	if priceNode.Length() == 0 {
		return domain.Price{}, fmt.Errorf("%w: no %q inside card", domain.ErrPriceNotFound, e.priceSelector)
	}

	return ParsePrice(priceNode.Text())
}

// ParsePrice нормализует текст цены: пробелы по краям (включая NBSP), десятичная запятая -> точка.
func ParsePrice(text string) (domain.Price, error) {
	normalized := strings.TrimSpace(text)
	normalized = strings.Replace(normalized, ",", ".", 1)

	if normalized == "" {
		return domain.Price{}, fmt.Errorf("%w: empty price text", domain.ErrInvalidPriceFormat)
	}

	v, err := decimal.NewFromString(normalized)
	if err != nil {
		return domain.Price{}, fmt.Errorf("%w: %q", domain.ErrInvalidPriceFormat, text)
	}

	p, err := domain.NewPrice(v)
	if err != nil {
		return domain.Price{}, fmt.Errorf("%w: negative price %q", domain.ErrInvalidPriceFormat, text)
	}
	return p, nil
}
