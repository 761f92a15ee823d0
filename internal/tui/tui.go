// Package tui provides an interactive schedule browser using Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quotegrid/cryptoseed/internal/db"
	"github.com/quotegrid/cryptoseed/internal/format"
	"github.com/quotegrid/cryptoseed/internal/model"
)

// ViewMode represents the current view state.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	difficultyColors = map[model.Difficulty]lipgloss.Color{
		model.DifficultyEasy:   lipgloss.Color("42"),
		model.DifficultyMedium: lipgloss.Color("214"),
		model.DifficultyHard:   lipgloss.Color("196"),
	}

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// Content area padding
	contentPadding = 2
)

// Model is the main Bubble Tea model for the schedule browser.
type Model struct {
	db       *db.DB
	entries  []db.ScheduleEntry // all scheduled puzzles
	filtered []db.ScheduleEntry // entries after filtering
	cursor   int
	viewMode ViewMode

	// Filter state
	filterInput  textinput.Model
	filtering    bool // filter input has focus
	filterActive string

	// UI state
	width  int
	height int
	err    error
}

// New creates a new browser model with the given database connection.
func New(database *db.DB) Model {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "date, author, or text"
	input.CharLimit = 64
	return Model{
		db:          database,
		viewMode:    ViewList,
		filterInput: input,
	}
}

// Messages
type entriesMsg struct {
	entries []db.ScheduleEntry
	err     error
}

// loadEntries loads the full schedule from the database.
func (m Model) loadEntries() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.db.ListSchedule("", "")
		return entriesMsg{entries: entries, err: err}
	}
}

// applyFilter filters entries against the active filter string.
func (m *Model) applyFilter() {
	m.filtered = nil
	filter := strings.ToLower(m.filterActive)
	for _, e := range m.entries {
		if filter != "" &&
			!strings.Contains(strings.ToLower(e.PuzzleDate), filter) &&
			!strings.Contains(strings.ToLower(e.Author), filter) &&
			!strings.Contains(strings.ToLower(e.Text), filter) {
			continue
		}
		m.filtered = append(m.filtered, e)
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadEntries()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case entriesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.applyFilter()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		return m, nil

	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		m.filterActive = m.filterInput.Value()
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(0, len(m.filtered)-1)

	case "enter":
		if len(m.filtered) > 0 {
			m.viewMode = ViewDetail
		}

	case "/":
		m.filtering = true
		m.filterInput.SetValue(m.filterActive)
		return m, m.filterInput.Focus()

	case "esc":
		if m.filterActive != "" {
			m.filterActive = ""
			m.filterInput.SetValue("")
			m.applyFilter()
		}

	case "r":
		return m, m.loadEntries()
	}

	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc", "enter":
		m.viewMode = ViewList

	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	switch m.viewMode {
	case ViewList:
		b.WriteString(m.listView())
	case ViewDetail:
		b.WriteString(m.detailView())
	}

	if m.filtering {
		b.WriteString("\n")
		b.WriteString(m.filterInput.View())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	}

	padStyle := lipgloss.NewStyle().
		PaddingLeft(contentPadding).
		PaddingRight(contentPadding).
		PaddingTop(1)

	return padStyle.Render(b.String())
}

func (m Model) listView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("cryptoseed"))
	b.WriteString(fmt.Sprintf("  %d/%d puzzles", len(m.filtered), len(m.entries)))
	if m.filterActive != "" {
		b.WriteString("  ")
		b.WriteString(filterStyle.Render("filter:\"" + m.filterActive + "\""))
	}
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString("No scheduled puzzles\n")
	} else {
		visibleHeight := m.height - 8
		if visibleHeight < 5 {
			visibleHeight = 15
		}
		start := 0
		if m.cursor >= visibleHeight {
			start = m.cursor - visibleHeight + 1
		}
		end := min(start+visibleHeight, len(m.filtered))

		rowWidth := m.width - (contentPadding * 2)
		if rowWidth < 60 {
			rowWidth = 80
		}

		for i := start; i < end; i++ {
			entry := m.filtered[i]
			if i == m.cursor {
				line := formatEntryLinePlain(entry, rowWidth)
				b.WriteString(selectedRowStyle.Width(rowWidth).Render(line))
			} else {
				b.WriteString(formatEntryLineStyled(entry, rowWidth))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k:nav  g/G:top/bottom  enter:detail  /:filter  esc:clear  r:refresh  q:quit"))

	return b.String()
}

// formatEntryLinePlain returns a plain text line without any ANSI styling.
// Used for the selected row where a single highlight style covers the line.
func formatEntryLinePlain(e db.ScheduleEntry, width int) string {
	preview := previewWidth(e, width)
	return fmt.Sprintf("%s  %-6s  %s", e.PuzzleDate, e.Difficulty, preview)
}

// formatEntryLineStyled returns a styled line for non-selected rows.
func formatEntryLineStyled(e db.ScheduleEntry, width int) string {
	date := dimStyle.Render(e.PuzzleDate)
	color := difficultyColors[e.Difficulty]
	difficulty := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%-6s", e.Difficulty))
	return fmt.Sprintf("%s  %s  %s", date, difficulty, previewWidth(e, width))
}

func previewWidth(e db.ScheduleEntry, width int) string {
	// date(10) + difficulty(6) + separators(4)
	textWidth := width - 20
	if textWidth < 20 {
		textWidth = 40
	}
	return format.Truncate(e.Text, textWidth)
}

func (m Model) detailView() string {
	if len(m.filtered) == 0 || m.cursor >= len(m.filtered) {
		return "No puzzle selected"
	}

	entry := m.filtered[m.cursor]
	var b strings.Builder

	b.WriteString(titleStyle.Render("Puzzle for "+entry.PuzzleDate) + "\n\n")

	color := difficultyColors[entry.Difficulty]
	difficultyStyled := lipgloss.NewStyle().Foreground(color).Render(string(entry.Difficulty))
	b.WriteString(detailLabelStyle.Render("Quote:      ") + fmt.Sprintf("#%d", entry.QuoteID) + "\n")
	b.WriteString(detailLabelStyle.Render("Difficulty: ") + difficultyStyled + "\n")
	if entry.Author != "" {
		b.WriteString(detailLabelStyle.Render("Author:     ") + entry.Author + "\n")
	}

	b.WriteString("\n" + detailLabelStyle.Render("Text:") + "\n")
	b.WriteString(entry.Text + "\n")

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k:prev/next  esc:back  q:quit"))

	return b.String()
}

// Run starts the schedule browser.
func Run(database *db.DB) error {
	m := New(database)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
