package auth

import "context"

type admittedKey struct{}

// WithAdmitted marks a request context as having passed an admission
// guard. The game loader requires this marker before mounting a module
// whose descriptor demands authentication.
func WithAdmitted(ctx context.Context) context.Context {
	return context.WithValue(ctx, admittedKey{}, true)
}

// Admitted reports whether the context passed through an admission guard.
func Admitted(ctx context.Context) bool {
	ok, _ := ctx.Value(admittedKey{}).(bool)
	return ok
}
