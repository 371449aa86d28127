package cartapi

import (
	"context"
	"fmt"
	"sync"

	"github.com/sawaikart/padharo/internal/domain"
)

// MockClient is an in-memory cart backend for tests. It behaves like the
// real service: whole-snapshot responses, server-computed subtotal, and an
// optional per-variant quantity clamp to simulate stock limits.
type MockClient struct {
	mu      sync.Mutex
	items   []domain.LineItem
	nextID  int
	Err     error
	Fetches int

	// ClampQuantity, when >0, caps any line quantity server-side.
	ClampQuantity int32

	// FetchHook runs at the start of every Fetch while holding no locks in
	// the caller; tests use it to interleave concurrent refreshes.
	FetchHook func()
}

// NewMockClient creates an empty mock cart.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) snapshotLocked() *domain.CartSnapshot {
	items := make([]domain.LineItem, len(m.items))
	copy(items, m.items)
	var subtotal int32
	for _, li := range items {
		subtotal += li.LineSubtotal()
	}
	return &domain.CartSnapshot{Items: items, Subtotal: subtotal, ServerSubtotal: true}
}

func (m *MockClient) Fetch(ctx context.Context, cartKey string) (*domain.CartSnapshot, error) {
	if m.FetchHook != nil {
		m.FetchHook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.snapshotLocked(), nil
}

func (m *MockClient) Add(ctx context.Context, cartKey, productID, variantID string, quantity int32) (*domain.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	if m.ClampQuantity > 0 && quantity > m.ClampQuantity {
		quantity = m.ClampQuantity
	}

	for i := range m.items {
		if m.items[i].ProductID == productID && m.items[i].VariantID == variantID {
			m.items[i].Quantity += quantity
			if m.ClampQuantity > 0 && m.items[i].Quantity > m.ClampQuantity {
				m.items[i].Quantity = m.ClampQuantity
			}
			return m.snapshotLocked(), nil
		}
	}

	m.nextID++
	m.items = append(m.items, domain.LineItem{
		LineID:    fmt.Sprintf("line-%d", m.nextID),
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
		UnitPrice: 100,
	})
	return m.snapshotLocked(), nil
}

func (m *MockClient) SetQuantity(ctx context.Context, cartKey, lineID string, quantity int32) (*domain.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	if m.ClampQuantity > 0 && quantity > m.ClampQuantity {
		quantity = m.ClampQuantity
	}

	for i := range m.items {
		if m.items[i].LineID == lineID {
			m.items[i].Quantity = quantity
			return m.snapshotLocked(), nil
		}
	}
	return nil, domain.ErrLineNotFound
}

func (m *MockClient) Remove(ctx context.Context, cartKey, lineID string) (*domain.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	for i := range m.items {
		if m.items[i].LineID == lineID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return m.snapshotLocked(), nil
		}
	}
	return nil, domain.ErrLineNotFound
}

func (m *MockClient) Clear(ctx context.Context, cartKey string) (*domain.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.items = nil
	return m.snapshotLocked(), nil
}

// SetUnitPrice adjusts a line's server-side price, simulating a price change
// that the next refresh must pick up.
func (m *MockClient) SetUnitPrice(lineID string, price int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].LineID == lineID {
			m.items[i].UnitPrice = price
		}
	}
}
