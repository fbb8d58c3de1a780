package tui

import (
	"fmt"
	"strings"

	"github.com/ethanbaker/til/internal/state"
	"github.com/ethanbaker/til/pkg/facts"
)

// EmptyMessage is shown when the active filter has no facts
const EmptyMessage = "No facts for this category yet! Create the first one ✌️"

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	if n := m.snap.Notice; n != nil {
		b.WriteString(noticeView(n))
		b.WriteString("\n\n")
	}

	if m.snap.ShowForm {
		b.WriteString(m.formView())
		b.WriteString("\n\n")
	}

	b.WriteString(m.filterView())
	b.WriteString("\n\n")

	b.WriteString(m.listView())
	b.WriteString("\n\n")

	b.WriteString(hintStyle.Render(m.helpView()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) headerView() string {
	toggle := "[n] Share a fact"
	if m.snap.ShowForm {
		toggle = "[esc] Close"
	}
	return titleStyle.Render("Today I Learned") + "  " + hintStyle.Render(toggle)
}

func noticeView(n *state.Notice) string {
	return noticeStyle.Render(n.Message) + " " + hintStyle.Render("[esc] dismiss")
}

func (m Model) formView() string {
	var b strings.Builder

	remaining := m.snap.RemainingChars()
	counter := fmt.Sprintf("%d", remaining)
	if remaining < 0 {
		counter = warnStyle.Render(counter)
	}

	b.WriteString(m.text.View())
	b.WriteString("  ")
	b.WriteString(counter)
	b.WriteString("\n")
	b.WriteString(m.source.View())
	b.WriteString("\n")

	label := "Choose category:"
	if d := m.draft(); d.Category != "" {
		label = categoryStyle(m.registry.Lookup(d.Category)).Render(d.Category)
	}
	if m.focus == fieldCategory {
		label = "< " + label + " >"
	}
	b.WriteString(label)
	b.WriteString("\n")

	if m.snap.IsUploading {
		b.WriteString(m.spinner.View() + " Posting...")
	} else {
		b.WriteString(hintStyle.Render("[enter] Post  [tab] next field"))
	}

	return formStyle.Render(b.String())
}

func (m Model) filterView() string {
	parts := make([]string, 0, m.registry.Len()+1)
	for _, name := range m.filters() {
		label := strings.ToUpper(name)

		var rendered string
		if name == facts.AllCategories {
			rendered = allFilterStyle.Render(label)
		} else {
			rendered = categoryStyle(m.registry.Lookup(name)).Render(label)
		}

		if name == m.snap.CurrentCategory {
			rendered = selectedStyle.Render("▸") + rendered
		}
		parts = append(parts, rendered)
	}
	return strings.Join(parts, " ")
}

func (m Model) listView() string {
	if m.snap.IsLoading {
		return m.spinner.View() + " Loading..."
	}

	if len(m.snap.Facts) == 0 {
		return EmptyMessage
	}

	var b strings.Builder
	for i, f := range m.snap.Facts {
		b.WriteString(m.factView(i, f))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("There are %d facts on database.", len(m.snap.Facts))))

	return b.String()
}

func (m Model) factView(i int, f facts.Fact) string {
	cursor := "  "
	if i == m.cursor {
		cursor = selectedStyle.Render("> ")
	}

	var b strings.Builder
	b.WriteString(cursor)
	if f.Disputed() {
		b.WriteString(disputedStyle.Render("[⛔️ DISPUTED]") + " ")
	}
	b.WriteString(f.Text)
	b.WriteString(" ")
	b.WriteString(mutedStyle.Render("(" + f.Source + ")"))
	b.WriteString(" ")
	b.WriteString(categoryStyle(m.registry.Lookup(f.Category)).Render("#" + f.Category + "#"))
	b.WriteString("\n    ")

	votes := fmt.Sprintf("👍 %d  🤯 %d  ⛔️ %d", f.VotesInteresting, f.VotesMindBlowing, f.VotesFalse)
	if m.snap.IsUpdating(f.ID) {
		b.WriteString(mutedStyle.Render(votes) + " " + m.spinner.View())
	} else {
		b.WriteString(counterStyle.Render(votes))
	}

	return b.String()
}

func (m Model) helpView() string {
	if m.snap.ShowForm {
		return "tab/shift+tab: field • ←/→: category • enter: post • esc: close • ctrl+c: quit"
	}
	return "↑/↓: select • ←/→: filter • 1/2/3: vote • n: share • r: reload • q: quit"
}
