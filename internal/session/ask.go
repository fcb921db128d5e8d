package session

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("session closed")

// Ask sends the message built around a fresh reply channel and waits for the
// answer, giving up when ctx ends or the session stops.
func Ask[T any](ctx context.Context, s *Session, build func(reply chan T) Msg) (T, error) {
	var zero T
	if s.closed() {
		return zero, ErrClosed
	}
	reply := make(chan T, 1)
	select {
	case s.inbox <- build(reply):
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-s.done:
		return zero, ErrClosed
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-s.done:
		return zero, ErrClosed
	}
}

// Send delivers a message that has no reply.
func Send(ctx context.Context, s *Session, m Msg) error {
	if s.closed() {
		return ErrClosed
	}
	select {
	case s.inbox <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
}

func (s *Session) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
