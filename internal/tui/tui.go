// Package tui provides the interactive team-selection menu shown when the
// generate command is run without arguments.
package tui

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storygen/internal/config"
)

// Entry is one selectable row in the menu.
type Entry struct {
	Key     string // team key, or "all" for the run-everything row
	Display string
	Detail  string
}

// model represents the state of the selection menu.
type model struct {
	entries     []Entry
	selectedIdx int
	choice      *Entry
	quitting    bool
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Margin(1, 0, 1, 2)
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	detailStyle   = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	helpStyle     = lipgloss.NewStyle().Faint(true).Margin(1, 0, 0, 2)
)

// entriesFromTeams builds the menu rows from the configured teams, sorted by
// key for a stable order, with an "all teams" row appended.
func entriesFromTeams(teams map[string]config.Team) []Entry {
	keys := make([]string, 0, len(teams))
	for key := range teams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys)+1)
	for _, key := range keys {
		team := teams[key]
		entries = append(entries, Entry{
			Key:     key,
			Display: team.Name,
			Detail:  fmt.Sprintf("%s (%s)", team.Sport, team.League),
		})
	}
	entries = append(entries, Entry{
		Key:     "all",
		Display: "All teams",
		Detail:  "Run the full pipeline for every configured team",
	})
	return entries
}

func initialModel(teams map[string]config.Team) model {
	return model{entries: entriesFromTeams(teams)}
}

// Init is the first command run by bubbletea; the menu needs none.
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles key messages and updates the cursor or selection.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.entries)-1 {
				m.selectedIdx++
			}
		case "enter":
			entry := m.entries[m.selectedIdx]
			m.choice = &entry
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m model) View() string {
	if m.quitting || m.choice != nil {
		return ""
	}

	view := titleStyle.Render("Select a team to generate a Story for")
	view += "\n"

	for i, entry := range m.entries {
		cursor := "  "
		display := entry.Display
		if i == m.selectedIdx {
			cursor = cursorStyle.Render("> ")
			display = selectedStyle.Render(display)
		}
		view += fmt.Sprintf("  %s%s %s\n", cursor, display, detailStyle.Render(entry.Detail))
	}

	view += helpStyle.Render("up/down: move · enter: select · q: quit")
	view += "\n"
	return view
}

// SelectTeams runs the menu and returns the chosen team keys. Choosing the
// "all" row returns every configured key; quitting returns an empty slice.
func SelectTeams(teams map[string]config.Team) ([]string, error) {
	program := tea.NewProgram(initialModel(teams))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("team selection failed: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.choice == nil {
		return nil, nil
	}

	if m.choice.Key == "all" {
		keys := make([]string, 0, len(teams))
		for key := range teams {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return keys, nil
	}
	return []string{m.choice.Key}, nil
}
