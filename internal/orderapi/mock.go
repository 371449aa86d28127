package orderapi

import (
	"context"
	"sync"

	"github.com/sawaikart/padharo/internal/domain"
)

// MockClient implements Client for testing.
type MockClient struct {
	mu sync.Mutex

	CreateResult *CreateOrderResult
	CreateErr    error
	Orders       map[string]*domain.OrderRecord
	GetErr       error

	// CreateCalls counts CreateOrder invocations; the double-submit tests
	// assert it stays at one.
	CreateCalls     int
	LastCreateParam *CreateOrderParams

	// CreateDelay lets tests hold the first submission in flight while a
	// second one races it.
	CreateDelay chan struct{}
}

// NewMockClient creates a mock with an empty order set.
func NewMockClient() *MockClient {
	return &MockClient{Orders: make(map[string]*domain.OrderRecord)}
}

func (m *MockClient) CreateOrder(ctx context.Context, params CreateOrderParams) (*CreateOrderResult, error) {
	m.mu.Lock()
	m.CreateCalls++
	m.LastCreateParam = &params
	delay := m.CreateDelay
	m.mu.Unlock()

	if delay != nil {
		<-delay
	}

	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.CreateResult, nil
}

// CallCount returns the CreateOrder invocation count under the mock's lock,
// so concurrent submission tests can poll it race-free.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CreateCalls
}

func (m *MockClient) GetOrder(ctx context.Context, internalOrderID string) (*domain.OrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	record, ok := m.Orders[internalOrderID]
	if !ok {
		return nil, domain.Errorf(domain.ENOTFOUND, "order.get", "order not found: %s", internalOrderID)
	}
	return record, nil
}
