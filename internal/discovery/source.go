package discovery

import "context"

// Source produces one raw mDNS service listing per call.
type Source interface {
	Services(ctx context.Context) (string, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (string, error)

// Services calls f(ctx).
func (f SourceFunc) Services(ctx context.Context) (string, error) {
	return f(ctx)
}
