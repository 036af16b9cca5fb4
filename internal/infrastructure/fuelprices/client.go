package fuelprices

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/romanzzaa/petrol-price-bot/internal/domain"
)

const (
	DefaultURL       = "https://fuelprices.ru/szfo/speterburg"
	DefaultUserAgent = "BMW"

	// Больше страницы с ценами нам не нужно, остальное отрезаем
	maxBodySize = 4 << 20
)

// Compile-time check
var _ domain.PageFetcher = (*Client)(nil)

type Client struct {
	httpClient *http.Client
}

// NewClient принимает timeout явно: без него fetch может висеть бесконечно
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchPage делает GET и возвращает тело страницы.
// Сетевые ошибки и любые не-2xx ответы возвращаются как *domain.FetchError.
func (c *Client) FetchPage(ctx context.Context, url string, headers map[string]string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Дочитываем тело, чтобы соединение вернулось в пул
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return "", &domain.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("http status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &domain.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	return string(body), nil
}
