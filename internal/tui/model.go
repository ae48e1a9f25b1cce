// Package tui implements the interactive task board.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wronai/taskguard/internal/task"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for the task board.
type Model struct {
	board  *task.Board
	tasks  []*task.Task
	cursor int
	status string
	width  int
	height int
}

// NewModel creates a board model over the given task board.
func NewModel(board *task.Board) Model {
	return Model{
		board: board,
		tasks: board.List(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "s":
		m = m.apply("start")
	case "c":
		m = m.apply("complete")
	case "b":
		m = m.apply("block")
	}
	return m, nil
}

// apply runs a board action on the task under the cursor and refreshes
// the visible list.
func (m Model) apply(action string) Model {
	if len(m.tasks) == 0 {
		return m
	}
	id := m.tasks[m.cursor].ID

	var err error
	switch action {
	case "start":
		_, err = m.board.Start(id)
	case "complete":
		_, err = m.board.Complete(id)
	case "block":
		_, err = m.board.Block(id)
	}

	m.status = ""
	if err != nil {
		m.status = err.Error()
	}
	m.tasks = m.board.List()
	if m.cursor >= len(m.tasks) && m.cursor > 0 {
		m.cursor = len(m.tasks) - 1
	}
	return m
}

// View renders the board.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("TaskGuard board"))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString("No tasks. Add one with 'taskguard add'.\n")
	}

	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s %s", statusGlyph(t.Status), t.Title)
		if t.Category != "" {
			line += helpStyle.Render(fmt.Sprintf("  (%s)", t.Category))
		}
		b.WriteString(cursor + styleFor(t.Status).Render(line) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("s start · c complete · b block · j/k move · q quit") + "\n")
	return b.String()
}

func statusGlyph(s task.Status) string {
	switch s {
	case task.StatusInProgress:
		return "[~]"
	case task.StatusCompleted:
		return "[x]"
	case task.StatusBlocked:
		return "[!]"
	}
	return "[ ]"
}

func styleFor(s task.Status) lipgloss.Style {
	switch s {
	case task.StatusInProgress:
		return activeStyle
	case task.StatusCompleted:
		return doneStyle
	case task.StatusBlocked:
		return blockedStyle
	}
	return lipgloss.NewStyle()
}
