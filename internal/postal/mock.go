package postal

import (
	"context"
	"fmt"
)

// MockLookup implements Lookup for testing.
type MockLookup struct {
	Places map[string]*Place
	Err    error
	Calls  int
}

// NewMockLookup creates an empty mock lookup.
func NewMockLookup() *MockLookup {
	return &MockLookup{Places: make(map[string]*Place)}
}

func (m *MockLookup) Resolve(ctx context.Context, pinCode string) (*Place, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.Places[pinCode]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("no locality found for pincode %s", pinCode)
}
