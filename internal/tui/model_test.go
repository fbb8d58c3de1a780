package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanbaker/til/internal/state"
	fact_store "github.com/ethanbaker/til/internal/stores/facts"
	"github.com/ethanbaker/til/pkg/facts"
)

func newTestModel(t *testing.T, seed ...facts.Fact) (Model, *state.Controller) {
	t.Helper()

	store := fact_store.NewInMemoryStore()
	store.Seed(seed)

	ctrl := state.New(store, state.Options{})
	require.NoError(t, ctrl.Start(context.Background()))

	m := New(context.Background(), ctrl, 0)
	t.Cleanup(m.unsubscribe)
	return m, ctrl
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs a command returned by Update, feeds its message back and reads
// the controller state the way a delivered snapshot would
func exec(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	model := next.(Model)
	model.sync()
	return model
}

func press(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestViewListsFacts(t *testing.T) {
	m, _ := newTestModel(t,
		facts.Fact{ID: 1, Text: "Lisbon is the capital of Portugal", Source: "https://en.wikipedia.org/wiki/Lisbon", Category: "society", VotesInteresting: 8, VotesMindBlowing: 3, VotesFalse: 1},
		facts.Fact{ID: 2, Text: "The moon is made of cheese", Source: "https://example.com/moon", Category: "science", VotesFalse: 3},
	)

	view := m.View()
	assert.Contains(t, view, "Today I Learned")
	assert.Contains(t, view, "[n] Share a fact")
	assert.Contains(t, view, "Lisbon is the capital of Portugal")
	assert.Contains(t, view, "#society#")
	assert.Contains(t, view, "👍 8  🤯 3  ⛔️ 1")
	assert.Contains(t, view, "DISPUTED")
	assert.Contains(t, view, "There are 2 facts on database.")
	assert.Contains(t, view, "TECHNOLOGY")
}

func TestViewEmptyAndLoading(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Contains(t, m.View(), EmptyMessage)

	m.snap.IsLoading = true
	assert.Contains(t, m.View(), "Loading...")
	assert.NotContains(t, m.View(), EmptyMessage)
}

func TestViewNotice(t *testing.T) {
	m, _ := newTestModel(t)
	m.snap.Notice = &state.Notice{Kind: state.NoticeLoadFailed, Message: state.LoadFailedMessage}

	assert.Contains(t, m.View(), state.LoadFailedMessage)
}

func TestShareFlow(t *testing.T) {
	m, ctrl := newTestModel(t)

	m, _ = press(m, runes("n"))
	assert.True(t, ctrl.Snapshot().ShowForm)
	assert.Contains(t, m.View(), "[esc] Close")
	assert.Contains(t, m.View(), "200")

	m, _ = press(m, runes("Water boils at 100C"))
	assert.Equal(t, "Water boils at 100C", ctrl.Snapshot().Form.Text)
	assert.Contains(t, m.View(), "181")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, runes("https://example.com/a"))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, facts.Draft{Text: "Water boils at 100C", Source: "https://example.com/a", Category: "science"}, ctrl.Snapshot().Form)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = exec(t, m, cmd)

	snap := ctrl.Snapshot()
	require.Len(t, snap.Facts, 1)
	assert.Equal(t, "Water boils at 100C", snap.Facts[0].Text)
	assert.False(t, snap.ShowForm)
	assert.Empty(t, m.text.Value())
	assert.Equal(t, -1, m.categoryIdx)
	assert.Contains(t, m.View(), "There are 1 facts on database.")
}

func TestInvalidSubmitShowsNotice(t *testing.T) {
	m, ctrl := newTestModel(t)

	m, _ = press(m, runes("n"))
	m, _ = press(m, runes("no source"))

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = exec(t, m, cmd)

	snap := ctrl.Snapshot()
	assert.True(t, snap.ShowForm)
	assert.Empty(t, snap.Facts)
	require.NotNil(t, snap.Notice)
	assert.Contains(t, m.View(), "The source must be a full http:// or https:// link")

	// First esc dismisses the notice, the second closes the form
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, ctrl.Snapshot().Notice)
	assert.True(t, ctrl.Snapshot().ShowForm)

	_, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, ctrl.Snapshot().ShowForm)
}

func TestVoteOnSelectedFact(t *testing.T) {
	m, ctrl := newTestModel(t,
		facts.Fact{ID: 1, Text: "a", Source: "https://example.com", Category: "news", VotesInteresting: 5},
		facts.Fact{ID: 2, Text: "b", Source: "https://example.com", Category: "news", VotesInteresting: 1, VotesMindBlowing: 9},
	)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)

	m, cmd := press(m, runes("2"))
	m = exec(t, m, cmd)
	assert.Contains(t, m.View(), "🤯 10")

	f, ok := ctrl.Snapshot().Fact(2)
	require.True(t, ok)
	assert.Equal(t, 10, f.VotesMindBlowing)
	assert.Equal(t, 1, f.VotesInteresting)
}

func TestFilterCycling(t *testing.T) {
	m, ctrl := newTestModel(t,
		facts.Fact{ID: 1, Text: "a", Source: "https://example.com", Category: "technology"},
		facts.Fact{ID: 2, Text: "b", Source: "https://example.com", Category: "news"},
	)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = exec(t, m, cmd)
	assert.Equal(t, "technology", ctrl.Snapshot().CurrentCategory)
	require.Len(t, ctrl.Snapshot().Facts, 1)

	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = exec(t, m, cmd)
	assert.Equal(t, facts.AllCategories, ctrl.Snapshot().CurrentCategory)
	assert.Len(t, ctrl.Snapshot().Facts, 2)

	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = exec(t, m, cmd)
	assert.Equal(t, "news", ctrl.Snapshot().CurrentCategory)
	assert.Contains(t, m.View(), "#news#")
}

func TestStaleSnapshotIgnored(t *testing.T) {
	m, ctrl := newTestModel(t)

	ctrl.ToggleForm()
	m.sync()
	newer := m.snap.Version

	m, _ = press(m, snapshotMsg(state.Snapshot{Version: newer - 1}))
	assert.Equal(t, newer, m.snap.Version)
	assert.True(t, m.snap.ShowForm)
}
