// Package deadline scopes a request to a cancellation token that fires
// after a fixed duration.
package deadline

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Default is the deadline used when Begin is given a non-positive duration.
const Default = 30 * time.Second

// ErrExpired is the cancellation cause of a token whose timer fired.
var ErrExpired = errors.New("deadline expired")

// ErrReleased is the cancellation cause of a token ended before its timer fired.
var ErrReleased = errors.New("token released")

// Token carries the cancellation signal for one request. Once signaled it
// stays signaled.
type Token struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	timer  *time.Timer

	mu      sync.Mutex
	ended   bool
	expired bool
}

// Begin derives a token from parent and arms its timer.
func Begin(parent context.Context, d time.Duration) *Token {
	if d <= 0 {
		d = Default
	}
	ctx, cancel := context.WithCancelCause(parent)
	t := &Token{ctx: ctx, cancel: cancel}
	t.mu.Lock()
	t.timer = time.AfterFunc(d, t.fire)
	t.mu.Unlock()
	return t
}

func (t *Token) fire() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ended || t.ctx.Err() != nil {
		return
	}
	t.expired = true
	t.cancel(ErrExpired)
}

// End stops the timer and releases the token. It is safe to call more than
// once and after the timer fired; only the first call has an effect.
func (t *Token) End() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ended {
		return
	}
	t.ended = true
	t.timer.Stop()
	t.cancel(ErrReleased)
}

// Context returns the context to hand to the transport.
func (t *Token) Context() context.Context { return t.ctx }

// Signaled reports whether the token has been canceled for any reason.
func (t *Token) Signaled() bool { return t.ctx.Err() != nil }

// Expired reports whether the token was canceled by its own timer.
func (t *Token) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

// Cause returns why the token was signaled, or nil while it is live.
func (t *Token) Cause() error {
	return context.Cause(t.ctx)
}
