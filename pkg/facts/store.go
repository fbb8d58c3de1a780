package facts

import "context"

// StoreInterface defines the operations of the facts table
type StoreInterface interface {
	ListFacts(ctx context.Context, q Query) ([]Fact, error)
	GetFact(ctx context.Context, id int64) (*Fact, error)
	CreateFact(ctx context.Context, d Draft) (*Fact, error)
	UpdateVotes(ctx context.Context, id int64, counter Counter, value int) (*Fact, error)
}
