package testutils

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/romanzzaa/petrol-price-bot/internal/domain"
)

// NopLogger - логгер, который никуда не пишет
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Fetcher ---

// FetchResponse - один заранее заданный ответ MockFetcher
type FetchResponse struct {
	Body string
	Err  error
}

// MockFetcher отдает ответы по очереди; когда очередь пуста, повторяет последний
type MockFetcher struct {
	Responses []FetchResponse
	Calls     int
	LastURL   string
	LastHdrs  map[string]string
	Mu        sync.Mutex

	last    FetchResponse
	hasLast bool
}

func NewMockFetcher(responses ...FetchResponse) *MockFetcher {
	return &MockFetcher{Responses: responses}
}

func (m *MockFetcher) Push(r FetchResponse) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Responses = append(m.Responses, r)
}

func (m *MockFetcher) FetchPage(ctx context.Context, url string, headers map[string]string) (string, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	m.LastURL = url
	m.LastHdrs = headers
	m.Calls++

	if len(m.Responses) > 0 {
		m.last = m.Responses[0]
		m.hasLast = true
		m.Responses = m.Responses[1:]
	}
	if !m.hasLast {
		return "", &domain.FetchError{URL: url, Err: errors.New("no response configured")}
	}
	return m.last.Body, m.last.Err
}

// --- Messenger ---

type SentMessage struct {
	ChatID   int64
	Text     string
	Keyboard bool
}

// MockMessenger запоминает все отправки; чаты из FailFor получают ошибку
type MockMessenger struct {
	Sent     []SentMessage
	Attempts []int64
	FailFor  map[int64]error
	Mu       sync.Mutex
}

func NewMockMessenger() *MockMessenger {
	return &MockMessenger{FailFor: make(map[int64]error)}
}

func (m *MockMessenger) Send(chatID int64, text string, withKeyboard bool) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	m.Attempts = append(m.Attempts, chatID)
	if err, ok := m.FailFor[chatID]; ok {
		return err
	}
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, Text: text, Keyboard: withKeyboard})
	return nil
}

func (m *MockMessenger) Count() int {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return len(m.Sent)
}

func (m *MockMessenger) Last() SentMessage {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if len(m.Sent) == 0 {
		return SentMessage{}
	}
	return m.Sent[len(m.Sent)-1]
}

// --- Store ---

// MockStore - in-memory SubscriberStore
type MockStore struct {
	Rows    map[int64]domain.Subscriber
	Order   []int64
	ListErr error
	Mu      sync.Mutex
}

func NewMockStore() *MockStore {
	return &MockStore{Rows: make(map[int64]domain.Subscriber)}
}

func (m *MockStore) Insert(ctx context.Context, sub domain.Subscriber) (bool, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if _, ok := m.Rows[sub.ChatID]; ok {
		return false, nil
	}
	m.Rows[sub.ChatID] = sub
	m.Order = append(m.Order, sub.ChatID)
	return true, nil
}

func (m *MockStore) ListIDs(ctx context.Context) ([]int64, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	ids := make([]int64, len(m.Order))
	copy(ids, m.Order)
	return ids, nil
}
