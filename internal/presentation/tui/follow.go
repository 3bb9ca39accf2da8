package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/weave"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type followKeys struct {
	Next     key.Binding
	Prev     key.Binding
	NextWrap key.Binding
	PrevWrap key.Binding
	First    key.Binding
	Last     key.Binding
	Quit     key.Binding
}

func (k followKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.NextWrap, k.Quit}
}

func (k followKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.NextWrap, k.PrevWrap},
		{k.First, k.Last, k.Quit},
	}
}

var defaultFollowKeys = followKeys{
	Next:     key.NewBinding(key.WithKeys("right", "l", "n", " ", "enter"), key.WithHelp("→/space", "next step")),
	Prev:     key.NewBinding(key.WithKeys("left", "h", "p", "backspace"), key.WithHelp("←", "previous step")),
	NextWrap: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "next wrap")),
	PrevWrap: key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "previous wrap")),
	First:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first step")),
	Last:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last step")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	followTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c084fc"))
	followLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#818cf8"))
	followPins  = lipgloss.NewStyle().Bold(true).Padding(1, 2).
			Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#a78bfa"))
	followWrap = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24"))
	followDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Follower is an interactive stepper through a plan, one step per screen.
type Follower struct {
	plan  *weave.Plan
	index int
	keys  followKeys
	bar   progress.Model
	help  help.Model
	done  bool
}

// NewFollower starts at the first step of plan.
func NewFollower(plan *weave.Plan) Follower {
	return Follower{
		plan: plan,
		keys: defaultFollowKeys,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help: help.New(),
	}
}

// Index is the current step.
func (m Follower) Index() int {
	return m.index
}

// Init implements tea.Model.
func (m Follower) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Follower) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-4, 80))
		m.help.Width = msg.Width
	case tea.KeyMsg:
		last := len(m.plan.Traversal) - 1
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.index = min(m.index+1, last)
		case key.Matches(msg, m.keys.Prev):
			m.index = max(m.index-1, 0)
		case key.Matches(msg, m.keys.NextWrap):
			m.index = m.nextWrap(last)
		case key.Matches(msg, m.keys.PrevWrap):
			m.index = m.prevWrap()
		case key.Matches(msg, m.keys.First):
			m.index = 0
		case key.Matches(msg, m.keys.Last):
			m.index = last
		}
	}
	return m, nil
}

func (m Follower) nextWrap(last int) int {
	for i := m.index + 1; i <= last; i++ {
		if !m.plan.Traversal.Chains(i) {
			return i
		}
	}
	return last
}

func (m Follower) prevWrap() int {
	for i := m.index - 1; i > 0; i-- {
		if !m.plan.Traversal.Chains(i) {
			return i
		}
	}
	return 0
}

// View implements tea.Model.
func (m Follower) View() string {
	if m.done || len(m.plan.Traversal) == 0 {
		return ""
	}

	t := m.plan.Traversal
	step := t[m.index]
	l, _ := m.plan.Label(m.index)

	var b strings.Builder
	b.WriteString(followTitle.Render(fmt.Sprintf("Step %d of %d", m.index+1, len(t))))
	b.WriteString("  ")
	b.WriteString(followLabel.Render(l))
	b.WriteString("\n\n")

	if !t.Chains(m.index) {
		b.WriteString(followWrap.Render(fmt.Sprintf("around from pin %d to pin %d", t[m.index-1].To, step.From)))
		b.WriteString("\n")
	}
	b.WriteString(followPins.Render(fmt.Sprintf("%d -> %d", step.From, step.To)))
	b.WriteString("\n\n")

	b.WriteString(m.bar.ViewAs(float64(m.index+1) / float64(len(t))))
	b.WriteString("\n")
	if m.index < len(m.plan.Running) {
		b.WriteString(followDim.Render(fmt.Sprintf("%.0f inches of thread so far", m.plan.Running[m.index])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Follow runs the stepper until the user quits.
func Follow(plan *weave.Plan, in io.Reader, out io.Writer) error {
	if len(plan.Traversal) == 0 {
		return nil
	}
	p := tea.NewProgram(NewFollower(plan), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
