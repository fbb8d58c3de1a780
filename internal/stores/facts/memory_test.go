package facts

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ethanbaker/til/pkg/facts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ facts.StoreInterface = (*InMemoryStore)(nil)
var _ facts.StoreInterface = (*Store)(nil)

func TestInMemoryStoreCreate(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	store.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

	created, err := store.CreateFact(ctx, facts.Draft{
		Text:     "Water boils at 100C",
		Source:   "https://example.com/a",
		Category: "science",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, 0, created.VotesInteresting)
	assert.Equal(t, 0, created.VotesMindBlowing)
	assert.Equal(t, 0, created.VotesFalse)
	assert.Equal(t, 2024, created.CreatedIn)

	second, err := store.CreateFact(ctx, facts.Draft{Text: "b", Source: "https://b.test", Category: "news"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, 2, store.Len())

	// Returned values are copies
	created.Text = "changed"
	got, err := store.GetFact(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Water boils at 100C", got.Text)
}

func TestInMemoryStoreListOrderingAndFilter(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	store.Seed([]facts.Fact{
		{ID: 1, Category: "science", VotesInteresting: 3},
		{ID: 2, Category: "news", VotesInteresting: 10},
		{ID: 3, Category: "science", VotesInteresting: 7},
		{ID: 4, Category: "science", VotesInteresting: 3},
	})

	all, err := store.ListFacts(ctx, facts.NewQuery(facts.AllCategories))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1, 4}, ids(all))

	science, err := store.ListFacts(ctx, facts.NewQuery("science"))
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 4}, ids(science))

	none, err := store.ListFacts(ctx, facts.NewQuery("history"))
	require.NoError(t, err)
	assert.Empty(t, none)

	limited, err := store.ListFacts(ctx, facts.Query{Category: facts.AllCategories, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids(limited))
}

func TestInMemoryStoreListCap(t *testing.T) {
	store := NewInMemoryStore()

	seed := make([]facts.Fact, 0, facts.MaxListLimit+5)
	for i := 0; i < facts.MaxListLimit+5; i++ {
		seed = append(seed, facts.Fact{Text: fmt.Sprintf("fact %d", i), Category: "news", VotesInteresting: i})
	}
	store.Seed(seed)

	list, err := store.ListFacts(context.Background(), facts.Query{})
	require.NoError(t, err)
	require.Len(t, list, facts.MaxListLimit)
	assert.Equal(t, facts.MaxListLimit+4, list[0].VotesInteresting)
}

func TestInMemoryStoreUpdateVotes(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	store.Seed([]facts.Fact{{ID: 7, Text: "x", Category: "science", VotesInteresting: 1, VotesMindBlowing: 9, VotesFalse: 2}})

	updated, err := store.UpdateVotes(ctx, 7, facts.VotesMindBlowing, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.VotesMindBlowing)
	assert.Equal(t, 1, updated.VotesInteresting)
	assert.Equal(t, 2, updated.VotesFalse)

	_, err = store.UpdateVotes(ctx, 99, facts.VotesFalse, 1)
	assert.ErrorIs(t, err, facts.ErrFactNotFound)

	_, err = store.UpdateVotes(ctx, 7, facts.Counter("votesBoring"), 1)
	assert.ErrorIs(t, err, facts.ErrInvalidCounter)

	_, err = store.UpdateVotes(ctx, 7, facts.VotesFalse, -1)
	assert.ErrorIs(t, err, facts.ErrInvalidVotes)
}

func TestInMemoryStoreSeedAssignsIDs(t *testing.T) {
	store := NewInMemoryStore()
	store.Seed([]facts.Fact{{ID: 5, Text: "a"}, {Text: "b"}})

	created, err := store.CreateFact(context.Background(), facts.Draft{Text: "c"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	b, err := store.GetFact(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "b", b.Text)
}

func TestInMemoryStoreHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewInMemoryStore().ListFacts(ctx, facts.Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

func ids(list []facts.Fact) []int64 {
	out := make([]int64, len(list))
	for i, f := range list {
		out[i] = f.ID
	}
	return out
}
