// Package ui provides progress display for repository analysis.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// The analyze pipeline stages, in order.
var Stages = []string{"Extracting metrics", "Aggregating insights", "Rendering report"}

// IsTTY returns true if stderr is a terminal.
func IsTTY() bool {
	return term.IsTerminal(os.Stderr.Fd())
}

// --- Plain text fallback ---

// PlainProgress prints stage messages to a callback function.
// Used when stderr is not a TTY (e.g., piped output).
type PlainProgress struct {
	print func(string)
}

// NewPlainProgress creates a new PlainProgress with the given print callback.
func NewPlainProgress(print func(string)) *PlainProgress {
	return &PlainProgress{print: print}
}

// Update prints a message for a started stage.
func (p *PlainProgress) Update(completed, total int, stage string) {
	p.print(fmt.Sprintf("[%d/%d] %s", completed, total, stage))
}

// Done prints a completion message.
func (p *PlainProgress) Done() {
	p.print("Done! Report ready.")
}

// --- TUI progress ---

// StageMsg is sent to the bubbletea program when a pipeline stage starts.
type StageMsg struct {
	Completed int
	Total     int
	Stage     string
}

// DoneMsg is sent to the bubbletea program when the report is ready.
type DoneMsg struct{}

type model struct {
	progress  progress.Model
	completed int
	total     int
	stage     string
	done      bool
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewTUIModel creates a new bubbletea model for the progress TUI.
func NewTUIModel(total int) model {
	return model{
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(50),
			progress.WithoutPercentage(),
		),
		total: total,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 10
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
	case StageMsg:
		m.completed = msg.Completed
		m.total = msg.Total
		m.stage = msg.Stage
		pct := float64(m.completed) / float64(m.total)
		return m, m.progress.SetPercent(pct)
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return fmt.Sprintf("\n  %s\n\n", titleStyle.Render("Done! Report ready."))
	}

	pad := strings.Repeat(" ", 2)
	counter := infoStyle.Render(fmt.Sprintf("%d/%d", m.completed, m.total))
	desc := m.stage
	if desc == "" {
		desc = "Starting..."
	}

	return "\n" +
		pad + titleStyle.Render("Analyzing repository") + "\n" +
		pad + m.progress.View() + "  " + counter + "\n" +
		pad + infoStyle.Render(desc) + "\n\n"
}

// RunTUI creates and returns a bubbletea program for the progress TUI.
// The program outputs to stderr so report output on stdout stays clean.
func RunTUI(total int) *tea.Program {
	m := NewTUIModel(total)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	return p
}
