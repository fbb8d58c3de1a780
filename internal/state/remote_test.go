package state

import (
	"context"
	"sync"

	store "github.com/ethanbaker/til/internal/stores/facts"
	"github.com/ethanbaker/til/pkg/facts"
)

// stubRemote wraps the in-memory store with failure injection and gates that
// hold calls until the test releases them
type stubRemote struct {
	*store.InMemoryStore

	mu          sync.Mutex
	listErr     error
	createErr   error
	updateErr   error
	listResult  []facts.Fact // Returned instead of the store's list when set
	listGate    chan struct{}
	createGate  chan struct{}
	updateGate  chan struct{}
	listCalls   int
	createCalls int
	updateCalls int
}

func newStubRemote(seed ...facts.Fact) *stubRemote {
	s := store.NewInMemoryStore()
	s.Seed(seed)
	return &stubRemote{InMemoryStore: s}
}

func wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *stubRemote) ListFacts(ctx context.Context, q facts.Query) ([]facts.Fact, error) {
	r.mu.Lock()
	r.listCalls++
	gate, fail, result := r.listGate, r.listErr, r.listResult
	r.mu.Unlock()

	if err := wait(ctx, gate); err != nil {
		return nil, err
	}
	if fail != nil {
		return nil, fail
	}
	if result != nil {
		return result, nil
	}
	return r.InMemoryStore.ListFacts(ctx, q)
}

func (r *stubRemote) CreateFact(ctx context.Context, d facts.Draft) (*facts.Fact, error) {
	r.mu.Lock()
	r.createCalls++
	gate, fail := r.createGate, r.createErr
	r.mu.Unlock()

	if err := wait(ctx, gate); err != nil {
		return nil, err
	}
	if fail != nil {
		return nil, fail
	}
	return r.InMemoryStore.CreateFact(ctx, d)
}

func (r *stubRemote) UpdateVotes(ctx context.Context, id int64, counter facts.Counter, value int) (*facts.Fact, error) {
	r.mu.Lock()
	r.updateCalls++
	gate, fail := r.updateGate, r.updateErr
	r.mu.Unlock()

	if err := wait(ctx, gate); err != nil {
		return nil, err
	}
	if fail != nil {
		return nil, fail
	}
	return r.InMemoryStore.UpdateVotes(ctx, id, counter, value)
}

func (r *stubRemote) calls() (list, create, update int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls, r.createCalls, r.updateCalls
}

func (r *stubRemote) set(fn func(r *stubRemote)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r)
}
