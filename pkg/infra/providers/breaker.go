package providers

import (
	"context"

	"github.com/NeuralTrust/SafeChat/pkg/infra/httpx"
)

type breakerBackend struct {
	Backend
	breaker httpx.CircuitBreaker
}

// WithCircuitBreaker fails fast while the backend's breaker is open. Blank replies count as failures.
func WithCircuitBreaker(backend Backend, breaker httpx.CircuitBreaker) Backend {
	return &breakerBackend{Backend: backend, breaker: breaker}
}

func (b *breakerBackend) Generate(ctx context.Context, req Request) (*Response, error) {
	var resp *Response
	err := b.breaker.Execute(func() error {
		r, err := b.Backend.Generate(ctx, req)
		if err != nil {
			return err
		}
		if r.IsBlank() {
			return ErrEmptyResponse
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
