package profile

import "context"

type ctxKey struct{}

func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext panics when ctx carries no profile store.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		panic("profile.FromContext: no profile store in context; wrap the handler with the store middleware")
	}
	return s
}
