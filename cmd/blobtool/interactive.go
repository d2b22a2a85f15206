package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/fieldblob/tree"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserModel struct {
	filename  string
	lines     []string
	plain     []string
	shown     int
	filter    textinput.Model
	view      viewport.Model
	filtering bool
	ready     bool
}

func newBrowserModel(filename string, nodes []tree.Node, names map[uint32]string) *browserModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.Width = 40
	return &browserModel{
		filename: filename,
		lines:    tree.Lines(nodes, tree.RenderOptions{Names: names, Color: true}),
		plain:    tree.Lines(nodes, tree.RenderOptions{Names: names}),
		filter:   ti,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

// headerHeight and footerHeight are the lines View draws around the
// viewport.
const (
	headerHeight = 2
	footerHeight = 1
)

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - headerHeight - footerHeight
		if !m.ready {
			m.view = viewport.New(msg.Width, height)
			m.ready = true
			m.refresh()
		} else {
			m.view.Width = msg.Width
			m.view.Height = height
		}
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter.Blur()
				if msg.String() == "esc" {
					m.filter.SetValue("")
					m.refresh()
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.refresh()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			m.filtering = true
			return m, m.filter.Focus()
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// refresh shows the lines whose plain text contains the filter.
func (m *browserModel) refresh() {
	query := strings.ToLower(m.filter.Value())
	var b strings.Builder
	m.shown = 0
	for i, line := range m.lines {
		if query != "" && !strings.Contains(strings.ToLower(m.plain[i]), query) {
			continue
		}
		if m.shown > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
		m.shown++
	}
	if m.ready {
		m.view.SetContent(b.String())
		m.view.GotoTop()
	}
}

func (m *browserModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Blob Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(" ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d", m.shown, len(m.lines))))
	b.WriteString("\n\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")
	if m.filtering {
		b.WriteString(m.filter.View())
	} else {
		b.WriteString(helpStyle.Render("↑/↓ scroll • / filter • q quit"))
	}
	return b.String()
}

func runInteractive(filename string, nodes []tree.Node, names map[uint32]string) error {
	p := tea.NewProgram(newBrowserModel(filename, nodes, names), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
