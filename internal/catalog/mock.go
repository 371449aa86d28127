package catalog

import (
	"context"

	"github.com/sawaikart/padharo/internal/domain"
)

// MockService implements Service for testing.
type MockService struct {
	Products map[string]*domain.Product
	Err      error

	// Calls counts GetProduct invocations, for asserting the resolver's
	// no-network passthrough path.
	Calls int
}

// NewMockService creates a mock with an empty product set.
func NewMockService() *MockService {
	return &MockService{Products: make(map[string]*domain.Product)}
}

func (m *MockService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Products[productID]
	if !ok {
		return nil, domain.Errorf(domain.ENOTFOUND, "catalog.get_product", "product not found: %s", productID)
	}
	return p, nil
}
