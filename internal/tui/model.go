// Package tui renders the fact list, filters and share form in the terminal.
// The model only reads state from controller snapshots; every action is a
// controller call made from a tea.Cmd.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ethanbaker/til/internal/state"
	"github.com/ethanbaker/til/pkg/facts"
)

// field is the focused form element
type field int

const (
	fieldText field = iota
	fieldSource
	fieldCategory
)

/** Messages */

// snapshotMsg delivers a new controller snapshot
type snapshotMsg state.Snapshot

// opDoneMsg reports a finished controller call. Results reach the view through snapshots
type opDoneMsg struct {
	op  string
	err error
}

/** Model */

// Model is the bubbletea model for the fact browser
type Model struct {
	ctx      context.Context
	ctrl     *state.Controller
	registry *facts.Registry
	timeout  time.Duration

	updates     <-chan state.Snapshot
	unsubscribe func()
	snap        state.Snapshot

	// Form
	text        textinput.Model
	source      textinput.Model
	categoryIdx int // -1 until a category is chosen
	focus       field

	// List
	cursor  int
	spinner spinner.Model

	width    int
	quitting bool
}

// New creates a model bound to the controller. timeout bounds each controller call (0 for none)
func New(ctx context.Context, ctrl *state.Controller, timeout time.Duration) Model {
	text := textinput.New()
	text.Placeholder = "Share a fact with the world..."
	text.CharLimit = facts.MaxTextLength * 2

	source := textinput.New()
	source.Placeholder = "Trustworthy source..."

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	updates, unsubscribe := ctrl.Subscribe()

	return Model{
		ctx:         ctx,
		ctrl:        ctrl,
		registry:    ctrl.Registry(),
		timeout:     timeout,
		updates:     updates,
		unsubscribe: unsubscribe,
		snap:        ctrl.Snapshot(),
		text:        text,
		source:      source,
		categoryIdx: -1,
		spinner:     sp,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.updates),
		m.run("start", m.ctrl.Start),
		m.spinner.Tick,
	)
}

// waitForSnapshot blocks until the controller publishes
func waitForSnapshot(updates <-chan state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

// run wraps a controller call in a command
func (m Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx := m.ctx
		if m.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.timeout)
			defer cancel()
		}
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.apply(state.Snapshot(msg))
		return m, waitForSnapshot(m.updates)

	case opDoneMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.text.Width = max(msg.Width-20, 20)
		m.source.Width = max(msg.Width-20, 20)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.snap.ShowForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

// apply stores a snapshot unless a newer one was already read
func (m *Model) apply(snap state.Snapshot) {
	if snap.Version < m.snap.Version {
		return
	}

	// A cleared draft after a submission resets the inputs
	if snap.Form.IsZero() && !m.draft().IsZero() && !snap.IsUploading {
		m.resetForm()
	}

	m.snap = snap
	if m.cursor >= len(snap.Facts) {
		m.cursor = max(len(snap.Facts)-1, 0)
	}
}

// sync reads the controller state after a synchronous call
func (m *Model) sync() {
	m.apply(m.ctrl.Snapshot())
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.unsubscribe()
	return m, tea.Quit
}

/** List */

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()

	case "n":
		m.ctrl.SetShowForm(true)
		m.sync()
		m.setFocus(fieldText)
		return m, textinput.Blink

	case "esc":
		m.ctrl.DismissNotice()
		m.sync()

	case "r":
		return m, m.run("reload", m.ctrl.Reload)

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.snap.Facts)-1 {
			m.cursor++
		}

	case "left", "h", "shift+tab":
		return m, m.selectFilter(-1)

	case "right", "l", "tab":
		return m, m.selectFilter(1)

	case "1":
		return m, m.vote(facts.VotesInteresting)
	case "2":
		return m, m.vote(facts.VotesMindBlowing)
	case "3":
		return m, m.vote(facts.VotesFalse)
	}

	return m, nil
}

// filters returns "all" followed by every category name
func (m Model) filters() []string {
	return append([]string{facts.AllCategories}, m.registry.Names()...)
}

// selectFilter moves the category filter by delta and reloads
func (m Model) selectFilter(delta int) tea.Cmd {
	filters := m.filters()

	current := 0
	for i, name := range filters {
		if name == m.snap.CurrentCategory {
			current = i
		}
	}

	next := filters[(current+delta+len(filters))%len(filters)]
	return m.run("filter", func(ctx context.Context) error {
		return m.ctrl.SetCategory(ctx, next)
	})
}

// vote votes on the selected fact unless it is already updating
func (m Model) vote(counter facts.Counter) tea.Cmd {
	if len(m.snap.Facts) == 0 {
		return nil
	}

	id := m.snap.Facts[m.cursor].ID
	if m.snap.IsUpdating(id) {
		return nil
	}

	return m.run("vote", func(ctx context.Context) error {
		_, err := m.ctrl.Vote(ctx, id, counter)
		return err
	})
}

/** Form */

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.snap.Notice != nil {
			m.ctrl.DismissNotice()
		} else {
			m.ctrl.SetShowForm(false)
		}
		m.sync()
		return m, nil

	case "tab", "down":
		m.setFocus((m.focus + 1) % 3)
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focus + 2) % 3)
		return m, nil

	case "enter":
		if m.snap.IsUploading {
			return m, nil
		}
		return m, m.run("submit", func(ctx context.Context) error {
			_, err := m.ctrl.Submit(ctx)
			return err
		})
	}

	// Inputs are disabled while the submission is uploading
	if m.snap.IsUploading {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldText:
		m.text, cmd = m.text.Update(msg)
	case fieldSource:
		m.source, cmd = m.source.Update(msg)
	case fieldCategory:
		m.cycleCategory(msg.String())
	}

	m.ctrl.UpdateForm(m.draft())
	m.sync()
	return m, cmd
}

// cycleCategory moves the category selector with the arrow keys
func (m *Model) cycleCategory(key string) {
	names := m.registry.Names()
	switch key {
	case "left", "h":
		if m.categoryIdx <= 0 {
			m.categoryIdx = len(names) - 1
		} else {
			m.categoryIdx--
		}
	case "right", "l", " ":
		m.categoryIdx = (m.categoryIdx + 1) % len(names)
	}
}

// draft builds the form values from the inputs
func (m Model) draft() facts.Draft {
	d := facts.Draft{Text: m.text.Value(), Source: m.source.Value()}
	if names := m.registry.Names(); m.categoryIdx >= 0 && m.categoryIdx < len(names) {
		d.Category = names[m.categoryIdx]
	}
	return d
}

func (m *Model) setFocus(f field) {
	m.focus = f
	m.text.Blur()
	m.source.Blur()

	switch f {
	case fieldText:
		m.text.Focus()
	case fieldSource:
		m.source.Focus()
	}
}

func (m *Model) resetForm() {
	m.text.Reset()
	m.source.Reset()
	m.categoryIdx = -1
	m.setFocus(fieldText)
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, ctrl *state.Controller, timeout time.Duration) error {
	p := tea.NewProgram(New(ctx, ctrl, timeout), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
