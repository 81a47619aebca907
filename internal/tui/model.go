package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/rankbar/internal/tui/styles"
	"github.com/mmcdole/rankbar/internal/widget"
)

// Model is the Bubble Tea model for the rank indicator
type Model struct {
	Title   string // shown next to the indicator, e.g. "TIOBE Index for Kotlin"
	Text    string // latest display text, empty until the first result
	ASCII   bool   // draw "->" instead of "→"
	Spinner spinner.Model
	Keys    KeyMap
	Width   int
}

// NewModel creates the indicator model
func NewModel(title string, ascii bool) Model {
	return Model{
		Title: title,
		ASCII: ascii,
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.SpinnerStyle),
		),
		Keys: DefaultKeyMap(),
	}
}

// Pending reports whether no rank has arrived yet
func (m Model) Pending() bool {
	return m.Text == ""
}

// Init starts the spinner while the first rank loads
func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.Quit) {
			return m, tea.Quit
		}
		return m, nil

	case RankMsg:
		m.Text = msg.Text
		return m, nil

	case spinner.TickMsg:
		// Let the spinner die out once there is something to show
		if !m.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the indicator on a single row plus a help hint
func (m Model) View() string {
	var body string
	if m.Pending() {
		body = m.Spinner.View()
	} else {
		body = styles.RankStyle.Render(widget.Printable(m.Text, m.ASCII))
	}

	indicator := styles.IndicatorStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Center, styles.BadgeStyle.Render(styles.BadgeText), " ", body),
	)

	parts := []string{indicator}
	if m.Title != "" {
		parts = append(parts, "  ", styles.DimStyle.Render(m.Title))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, parts...)

	help := styles.HelpKeyStyle.Render(m.Keys.Quit.Help().Key) + " " +
		styles.HelpDescStyle.Render(m.Keys.Quit.Help().Desc)

	return lipgloss.JoinVertical(lipgloss.Left, row, help)
}
