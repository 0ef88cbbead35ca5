// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services read them. Keeping the package free
// of net/http lets services depend on request-scoped data without pulling in
// transport code.
//
// Usage in services (read values):
//
//	accountID := requestcontext.AccountID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithAccount(ctx, accountID, domain.RoleDonor)
package requestcontext

import (
	"context"
	"time"

	"carebridge/pkg/domain"
)

type (
	accountIDKey   struct{}
	roleKey        struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	deviceKey      struct{}
)

// WithAccount attaches the authenticated principal to the context.
func WithAccount(ctx context.Context, id domain.AccountID, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, accountIDKey{}, id)
	return context.WithValue(ctx, roleKey{}, role)
}

// AccountID returns the authenticated account, or the nil ID when the request
// is unauthenticated.
func AccountID(ctx context.Context) domain.AccountID {
	id, ok := ctx.Value(accountIDKey{}).(domain.AccountID)
	if !ok {
		return domain.AccountID{}
	}
	return id
}

// Role returns the authenticated principal's role, or the empty role.
func Role(ctx context.Context) domain.Role {
	role, ok := ctx.Value(roleKey{}).(domain.Role)
	if !ok {
		return ""
	}
	return role
}

// WithRequestID attaches the request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request correlation ID, or an empty string.
func RequestID(ctx context.Context) string {
	id, ok := ctx.Value(requestIDKey{}).(string)
	if !ok {
		return ""
	}
	return id
}

// WithTime pins the request clock. Middleware sets it to the arrival time;
// tests set it to a fixed instant.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now returns the request clock, falling back to time.Now when unset.
func Now(ctx context.Context) time.Time {
	t, ok := ctx.Value(requestTimeKey{}).(time.Time)
	if !ok {
		return time.Now()
	}
	return t
}

// WithDevice attaches a human-readable login device summary (browser + OS).
func WithDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, deviceKey{}, device)
}

// Device returns the login device summary, or an empty string.
func Device(ctx context.Context) string {
	d, ok := ctx.Value(deviceKey{}).(string)
	if !ok {
		return ""
	}
	return d
}
