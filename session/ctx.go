package session

import "context"

var managerCtxKey = &contextKey{"session"}

type contextKey struct {
	name string
}

// WithManager returns a context that carries m
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerCtxKey, m)
}

// FromContext returns the Manager stored by WithManager, or ErrNoSession.
func FromContext(ctx context.Context) (*Manager, error) {
	m, ok := ctx.Value(managerCtxKey).(*Manager)
	if !ok || m == nil {
		return nil, ErrNoSession
	}
	return m, nil
}

// MustFromContext is FromContext for callers that cannot run without a
// session. A missing Manager is a wiring bug, so it panics.
func MustFromContext(ctx context.Context) *Manager {
	m, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return m
}
