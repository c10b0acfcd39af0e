// Package session carries the authenticated operator through a request.
package session

import (
	"context"
	"time"
)

type ctxKey struct{}

// Session is the request-scoped identity established from a bearer token
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewContext returns a copy of ctx carrying s
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, if any
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// Subject identifies the session's owner for per-user bookkeeping such as
// rate limits and idempotency keys.
func (s *Session) Subject() string {
	if s == nil {
		return ""
	}
	return s.Username
}
