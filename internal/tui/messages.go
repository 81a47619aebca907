package tui

import tea "github.com/charmbracelet/bubbletea"

// RankMsg carries a new display text into the bubbletea loop
type RankMsg struct {
	Text string
}

// ProgramRenderer hands display text to a running program. Send is safe to call
// from any goroutine; the model only changes inside Update.
type ProgramRenderer struct {
	program *tea.Program
}

// NewProgramRenderer wraps p
func NewProgramRenderer(p *tea.Program) *ProgramRenderer {
	return &ProgramRenderer{program: p}
}

// Render implements widget.Renderer
func (r *ProgramRenderer) Render(text string) {
	r.program.Send(RankMsg{Text: text})
}
