package gateway

import "context"

// Strategies are plain values constructed at startup and injected into the
// router; nothing registers itself into process-wide state.

// BasicStrategy exchanges password credentials with the upstream API over
// HTTP Basic transport.
type BasicStrategy struct {
	client *Client
}

// NewBasicStrategy creates a BasicStrategy backed by the given client.
func NewBasicStrategy(client *Client) *BasicStrategy {
	return &BasicStrategy{client: client}
}

// Authenticate performs the upstream sign-in exchange.
func (s *BasicStrategy) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	return s.client.SignIn(ctx, email, password)
}
