// Package picker is the --interactive prompt that lets the user pick one of
// several replacements for each ambiguous deprecated token.
package picker

import (
	"fmt"

	"tokenlint/internal/engine/lint"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#3B82F6")).
			Padding(0, 1)
)

// Candidate is a finding with suggestions awaiting a decision.
type Candidate struct {
	Path    string
	Finding lint.Finding
}

// Decision is a chosen suggestion edit for a file.
type Decision struct {
	Path string
	Edit lint.Edit
}

type item struct {
	title, desc string
	// suggestion indexes Finding.Suggestions; -1 skips the finding.
	suggestion int
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type Model struct {
	candidates []Candidate
	current    int
	list       list.Model
	decisions  []Decision
	done       bool
}

func NewModel(candidates []Candidate) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.Styles.Title = titleStyle
	m := Model{candidates: candidates, list: l}
	if len(candidates) == 0 {
		m.done = true
		return m
	}
	m.load()
	return m
}

func (m *Model) load() {
	c := m.candidates[m.current]
	f := c.Finding
	items := make([]list.Item, 0, len(f.Suggestions)+1)
	for i, s := range f.Suggestions {
		items = append(items, item{title: s.Fix.Text, desc: s.Desc, suggestion: i})
	}
	items = append(items, item{title: "skip", desc: "Leave " + f.Name + " as it is.", suggestion: -1})
	m.list.SetItems(items)
	m.list.ResetSelected()
	m.list.Title = fmt.Sprintf("[%d/%d] %s:%d:%d  %s", m.current+1, len(m.candidates),
		c.Path, f.Start.Line, f.Start.Column, f.Message)
}

// Decisions returns the edits chosen so far.
func (m Model) Decisions() []Decision {
	out := make([]Decision, len(m.decisions))
	copy(out, m.decisions)
	return out
}

func (m Model) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok && it.suggestion >= 0 {
				c := m.candidates[m.current]
				m.decisions = append(m.decisions, Decision{
					Path: c.Path,
					Edit: c.Finding.Suggestions[it.suggestion].Fix,
				})
			}
			return m.next()
		case "s":
			return m.next()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) next() (tea.Model, tea.Cmd) {
	m.current++
	if m.current >= len(m.candidates) {
		m.done = true
		return m, tea.Quit
	}
	m.load()
	return m, nil
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	return docStyle.Render(m.list.View())
}

// Run shows the picker and returns the chosen edits. Quitting early keeps the
// decisions made up to that point.
func Run(candidates []Candidate, opts ...tea.ProgramOption) ([]Decision, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	final, err := tea.NewProgram(NewModel(candidates), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("interactive picker: %w", err)
	}
	return final.(Model).Decisions(), nil
}

// Collect picks the findings that need a decision, in file order.
func Collect(path string, findings []lint.Finding) []Candidate {
	var out []Candidate
	for _, f := range findings {
		if f.Fix == nil && len(f.Suggestions) > 0 {
			out = append(out, Candidate{Path: path, Finding: f})
		}
	}
	return out
}
