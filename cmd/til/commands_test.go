package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanbaker/til/internal/state"
	fact_store "github.com/ethanbaker/til/internal/stores/facts"
	"github.com/ethanbaker/til/pkg/facts"
	"github.com/ethanbaker/til/pkg/utils"
)

func newTestStore() *fact_store.InMemoryStore {
	store := fact_store.NewInMemoryStore()
	store.Seed([]facts.Fact{
		{ID: 1, Text: "React is being developed by Meta", Source: "https://opensource.fb.com/", Category: "technology", VotesInteresting: 24, VotesMindBlowing: 9, VotesFalse: 4},
		{ID: 2, Text: "Lisbon is the capital of Portugal", Source: "https://en.wikipedia.org/wiki/Lisbon", Category: "society", VotesInteresting: 8, VotesMindBlowing: 3, VotesFalse: 1},
	})
	return store
}

func runCLI(t *testing.T, store *fact_store.InMemoryStore, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd(func(cfg *utils.Config) (state.Remote, error) {
		return store, nil
	})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListCommand(t *testing.T) {
	out, _, err := runCLI(t, newTestStore(), "list")
	require.NoError(t, err)
	goldie.New(t).Assert(t, "list", []byte(out))

	out, _, err = runCLI(t, newTestStore(), "list", "--category", "society")
	require.NoError(t, err)
	assert.NotContains(t, out, "React")
	assert.Contains(t, out, "#society#")

	out, _, err = runCLI(t, newTestStore(), "list", "-c", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No facts for this category yet!")

	_, _, err = runCLI(t, newTestStore(), "list", "-c", "gossip")
	assert.ErrorIs(t, err, state.ErrUnknownFilter)
}

func TestAddCommand(t *testing.T) {
	store := newTestStore()

	out, _, err := runCLI(t, store, "add", "--text", "Water boils at 100C", "--source", "https://example.com/a", "--category", "science")
	require.NoError(t, err)
	assert.Contains(t, out, "Shared fact #3 in science")
	assert.Equal(t, 3, store.Len())

	_, errOut, err := runCLI(t, store, "add", "--text", "no source", "--category", "science")
	_, ok := facts.AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, errOut, "source: The source must be a full http:// or https:// link")
	assert.Equal(t, 3, store.Len())
}

func TestVoteCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		want    string
	}{
		{"mind blowing", []string{"vote", "1", "mindblowing"}, nil, "mind blowing 10"},
		{"alias", []string{"vote", "2", "false"}, nil, "false 2"},
		{"unknown counter", []string{"vote", "1", "boring"}, facts.ErrInvalidCounter, ""},
		{"unknown fact", []string{"vote", "9", "interesting"}, facts.ErrFactNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, newTestStore(), tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCategoriesCommand(t *testing.T) {
	t.Setenv("CATEGORIES_PATH", "")

	out, _, err := runCLI(t, newTestStore(), "categories")
	require.NoError(t, err)
	goldie.New(t).Assert(t, "categories", []byte(out))
}
