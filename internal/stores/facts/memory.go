package facts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethanbaker/til/pkg/facts"
)

// InMemoryStore provides an in-memory implementation of facts.StoreInterface.
// It backs the API when no database is configured and is used throughout the tests
type InMemoryStore struct {
	facts  map[int64]*facts.Fact
	nextID int64
	now    func() time.Time
	mutex  sync.RWMutex
}

// NewInMemoryStore creates a new in-memory fact store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		facts:  make(map[int64]*facts.Fact),
		nextID: 1,
		now:    time.Now,
	}
}

// ListFacts returns copies of the facts matching the query, best voted first
func (s *InMemoryStore) ListFacts(ctx context.Context, q facts.Query) ([]facts.Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q = q.Normalize()

	s.mutex.RLock()
	list := make([]facts.Fact, 0, len(s.facts))
	for _, f := range s.facts {
		if q.Matches(*f) {
			list = append(list, *f)
		}
	}
	s.mutex.RUnlock()

	facts.SortFacts(list)
	if len(list) > q.Limit {
		list = list[:q.Limit]
	}

	return list, nil
}

// GetFact retrieves a copy of a fact by id
func (s *InMemoryStore) GetFact(ctx context.Context, id int64) (*facts.Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	f, exists := s.facts[id]
	if !exists {
		return nil, fmt.Errorf("%w: id %d", facts.ErrFactNotFound, id)
	}

	factCopy := *f
	return &factCopy, nil
}

// CreateFact stores a new fact with zeroed counters
func (s *InMemoryStore) CreateFact(ctx context.Context, d facts.Draft) (*facts.Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	f := &facts.Fact{
		ID:        s.nextID,
		Text:      d.Text,
		Source:    d.Source,
		Category:  d.Category,
		CreatedIn: s.now().Year(),
	}
	s.facts[f.ID] = f
	s.nextID++

	factCopy := *f
	return &factCopy, nil
}

// UpdateVotes sets a single counter on a fact
func (s *InMemoryStore) UpdateVotes(ctx context.Context, id int64, counter facts.Counter, value int) (*facts.Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !counter.Valid() {
		return nil, fmt.Errorf("%w: %q", facts.ErrInvalidCounter, counter)
	}
	if value < 0 {
		return nil, facts.ErrInvalidVotes
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, exists := s.facts[id]
	if !exists {
		return nil, fmt.Errorf("%w: id %d", facts.ErrFactNotFound, id)
	}
	f.SetVotes(counter, value)

	factCopy := *f
	return &factCopy, nil
}

// Seed adds facts as-is. Facts without an id get the next free one
func (s *InMemoryStore) Seed(seed []facts.Fact) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, f := range seed {
		if f.ID == 0 {
			f.ID = s.nextID
		}
		if f.ID >= s.nextID {
			s.nextID = f.ID + 1
		}

		factCopy := f
		s.facts[f.ID] = &factCopy
	}
}

// Len returns the number of stored facts
func (s *InMemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.facts)
}
