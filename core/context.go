package core

import "context"

// Context keys for orchestration options
type contextKey string

const suppressHeaderKey contextKey = "suppressHeader"

// WithSuppressHeader marks the context so progress lines are not printed.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether progress lines should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}
