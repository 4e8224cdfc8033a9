package test

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/fx"
)

// LifecycleRecorder collects fx hooks so tests can drive start and stop by hand.
type LifecycleRecorder struct {
	mu    sync.Mutex
	Hooks []fx.Hook
}

// Append stores hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Hooks = append(l.Hooks, h)
}

// Start runs OnStart of every hook in registration order and stops at the first error.
func (l *LifecycleRecorder) Start(ctx context.Context) error {
	for _, h := range l.snapshot() {
		if h.OnStart == nil {
			continue
		}
		if err := h.OnStart(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Stop runs OnStop of every hook in reverse order, as fx does, joining errors.
func (l *LifecycleRecorder) Stop(ctx context.Context) error {
	hooks := l.snapshot()
	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if hooks[i].OnStop == nil {
			continue
		}
		if err := hooks[i].OnStop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *LifecycleRecorder) snapshot() []fx.Hook {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]fx.Hook(nil), l.Hooks...)
}

// ShutdownerStub records shutdown requests issued by failing components.
type ShutdownerStub struct {
	Called chan struct{}

	mu       sync.Mutex
	requests int
}

// Shutdown counts the request and signals Called without blocking.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

// Requests returns how many times Shutdown was called.
func (s *ShutdownerStub) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}
