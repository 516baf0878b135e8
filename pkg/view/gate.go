package view

import (
	"context"
	"sync"
)

// resumeGate is the one-shot signal behind the interception handshake.
// fire is idempotent; wait blocks until the gate fires or the context is
// canceled.
type resumeGate struct {
	once sync.Once
	ch   chan struct{}
}

func newResumeGate() *resumeGate {
	return &resumeGate{ch: make(chan struct{})}
}

func (g *resumeGate) fire() {
	g.once.Do(func() {
		close(g.ch)
	})
}

func (g *resumeGate) wait(ctx context.Context) error {
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
