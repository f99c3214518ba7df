package tui

import (
	"fmt"
	"os"
	"strings"

	"devserve/pkg/detector"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tipStyle      = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("190")).Italic(true)
)

// Option is one selectable row of the framework prompt: a framework
// narrowed down to a single dev command variant.
type Option struct {
	Label     string
	Framework detector.FrameworkInfo
}

// BuildOptions expands each candidate into one row per watch-command
// variant so the user picks both a framework and the exact command.
func BuildOptions(frameworks []detector.FrameworkInfo) []Option {
	var options []Option
	for _, fw := range frameworks {
		for _, command := range fw.Watch.Commands {
			joined := strings.Join(command, " ")

			narrowed := fw
			narrowed.Dev.Commands = []string{joined}
			narrowed.Watch.Commands = [][]string{command}

			options = append(options, Option{
				Label:     fmt.Sprintf("[%s] %s", fw.Name, joined),
				Framework: narrowed,
			})
		}
	}
	return options
}

// FilterOptions keeps the rows whose label fuzzy-matches the input; an
// empty input keeps everything.
func FilterOptions(options []Option, input string) []Option {
	if strings.TrimSpace(input) == "" {
		return options
	}

	var filtered []Option
	for _, opt := range options {
		if fuzzyMatch(opt.Label, input) {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

// fuzzyMatch reports whether every input character appears in the label in
// order, case-insensitively
func fuzzyMatch(label, input string) bool {
	label = strings.ToLower(label)
	input = strings.ToLower(input)

	pos := 0
	for _, r := range input {
		idx := strings.IndexRune(label[pos:], r)
		if idx < 0 {
			return false
		}
		pos += idx + 1
	}
	return true
}

type selectModel struct {
	input    textinput.Model
	options  []Option
	filtered []Option
	cursor   int
	choice   *Option
	quitting bool
}

func initialSelectModel(options []Option) selectModel {
	input := textinput.New()
	input.Placeholder = "Type to filter"
	input.Focus()

	return selectModel{
		input:    input,
		options:  options,
		filtered: options,
	}
}

func (m selectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			if m.cursor < len(m.filtered) {
				choice := m.filtered[m.cursor]
				m.choice = &choice
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	m.filtered = FilterOptions(m.options, m.input.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
	return m, cmd
}

func (m selectModel) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Multiple possible frameworks detected. Which one do you want to run?"))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")

	if len(m.filtered) == 0 {
		s.WriteString(helpStyle.Render("No matches"))
		s.WriteString("\n")
	}

	for i, opt := range m.filtered {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "▶ "
			style = selectedStyle
		}
		s.WriteString(style.Render(cursor + opt.Label))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Use ↑/↓ to navigate, type to filter, Enter to select, Esc to quit"))
	return s.String()
}

// ChooseFramework prompts the user to pick one framework out of several
// candidates. Resolution blocks here until a selection is made.
func ChooseFramework(frameworks []detector.FrameworkInfo) (detector.FrameworkInfo, error) {
	options := BuildOptions(frameworks)

	p := tea.NewProgram(initialSelectModel(options))
	finalModel, err := p.Run()
	if err != nil {
		return detector.FrameworkInfo{}, fmt.Errorf("error running framework prompt: %w", err)
	}

	final := finalModel.(selectModel)
	if final.choice == nil {
		return detector.FrameworkInfo{}, fmt.Errorf("framework selection cancelled")
	}

	name := final.choice.Framework.Name
	fmt.Fprintf(os.Stdout, "\n%s\n",
		tipStyle.Render(fmt.Sprintf("Tip: add framework = %q to your devserve config to skip this prompt", name)))

	return final.choice.Framework, nil
}
