package mock

import (
	"context"
	"sync"
)

// MockPacer is a test double for ai.Pacer that never sleeps.
type MockPacer struct {
	// WaitFunc is called by Wait if set.
	WaitFunc func(ctx context.Context) error

	mu    sync.Mutex
	waits int
}

// NewMockPacer returns a pacer that only counts calls.
func NewMockPacer() *MockPacer {
	return &MockPacer{}
}

func (p *MockPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	p.waits++
	fn := p.WaitFunc
	p.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil
}

// Waits returns how many times Wait was called.
func (p *MockPacer) Waits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waits
}
