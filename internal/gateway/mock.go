package gateway

import "context"

// MockGateway implements Gateway for testing.
type MockGateway struct {
	Handoff    *Handoff
	Err        error
	Launches   int
	LastParams LaunchParams
}

func (m *MockGateway) Launch(ctx context.Context, params LaunchParams) (*Handoff, error) {
	m.Launches++
	m.LastParams = params
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Handoff != nil {
		return m.Handoff, nil
	}
	return &Handoff{RedirectURL: "https://gateway.example/pay/" + params.SessionToken}, nil
}
