package addressbook

import (
	"context"
	"fmt"
	"sync"

	"github.com/sawaikart/padharo/internal/domain"
)

// MockClient is an in-memory address book for tests.
type MockClient struct {
	mu        sync.Mutex
	addresses map[string][]domain.Address // userID -> addresses
	nextID    int
	Err       error
}

// NewMockClient creates an empty mock address book.
func NewMockClient() *MockClient {
	return &MockClient{addresses: make(map[string][]domain.Address)}
}

func (m *MockClient) List(ctx context.Context, userID string) ([]domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.Address, len(m.addresses[userID]))
	copy(out, m.addresses[userID])
	return out, nil
}

func (m *MockClient) Upsert(ctx context.Context, userID string, addr domain.Address) (*domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	if addr.ID == "" {
		m.nextID++
		addr.ID = fmt.Sprintf("addr-%d", m.nextID)
		m.addresses[userID] = append(m.addresses[userID], addr)
		return &addr, nil
	}

	for i := range m.addresses[userID] {
		if m.addresses[userID][i].ID == addr.ID {
			m.addresses[userID][i] = addr
			return &addr, nil
		}
	}
	return nil, domain.ErrAddressNotFound
}

func (m *MockClient) Delete(ctx context.Context, userID, addressID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	list := m.addresses[userID]
	for i := range list {
		if list[i].ID == addressID {
			m.addresses[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrAddressNotFound
}
