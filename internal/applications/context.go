package applications

import "context"

type ctxKey struct{}

// WithStore returns a context carrying s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the store placed by WithStore. Calling it on a context
// that never went through the store middleware is a programming error and
// panics.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		panic("applications.FromContext: no applications store in context; wrap the handler with the store middleware")
	}
	return s
}
