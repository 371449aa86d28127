package identity

import "context"

// StaticProvider resolves tokens from a fixed map. Used in development and
// tests, where a real identity service is not running.
type StaticProvider struct {
	Tokens map[string]Resolution
}

// NewStaticProvider creates a provider with the given token table.
func NewStaticProvider(tokens map[string]Resolution) *StaticProvider {
	if tokens == nil {
		tokens = make(map[string]Resolution)
	}
	return &StaticProvider{Tokens: tokens}
}

func (p *StaticProvider) Resolve(ctx context.Context, token string) (Resolution, error) {
	return p.Tokens[token], nil
}
