package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"multibrot/internal/colouring"
)

// paletteCommand is one entry in the command palette.
type paletteCommand struct {
	name string
	help string
	msg  tea.Msg
}

// paletteCommands mirrors the keybound actions so everything reachable by key
// is also discoverable by name.
func paletteCommands() []paletteCommand {
	cmds := []paletteCommand{
		{"Zoom in", "Zoom further into the set", ZoomMsg{Factor: -1.2}},
		{"Zoom out", "Zoom further out of the set", ZoomMsg{Factor: 1.2}},
		{"Fast zoom in", "Faster zoom further into the set", ZoomMsg{Factor: -2.0}},
		{"Fast zoom out", "Faster zoom further out of the set", ZoomMsg{Factor: 2.0}},
		{"Go home", "Go to 0, 0", ZeroMsg{}},
		{"Reset", "Restore the view and parameters to their defaults", ResetMsg{}},
		{"More detail", "Raise the iteration ceiling (will run slower)", AdjustIterationMsg{Delta: 10}},
		{"Less detail", "Lower the iteration ceiling (will run faster)", AdjustIterationMsg{Delta: -10}},
		{"Lots more detail", "Raise the iteration ceiling by 100", AdjustIterationMsg{Delta: 100}},
		{"Lots less detail", "Lower the iteration ceiling by 100", AdjustIterationMsg{Delta: -100}},
	}
	for _, m := range colouring.Maps() {
		cmds = append(cmds, paletteCommand{
			name: "Set the colour map to " + m.String(),
			help: "Switch the palette to " + m.String(),
			msg:  SetColourMsg{Map: m},
		})
	}
	return cmds
}

// commandSource adapts palette commands to fuzzy.Source.
type commandSource []paletteCommand

func (s commandSource) String(i int) string { return s[i].name }
func (s commandSource) Len() int            { return len(s) }

// PaletteModal is a fuzzy-searchable command palette over the plot actions.
type PaletteModal struct {
	input    textinput.Model
	commands []paletteCommand
	matches  []int // indices into commands, filtered by the query
	cursor   int
}

var _ View = (*PaletteModal)(nil)

// NewPaletteModal creates the palette with every command visible.
func NewPaletteModal() *PaletteModal {
	ti := textinput.New()
	ti.Placeholder = "command"
	ti.Width = 40
	ti.Focus()
	m := &PaletteModal{input: ti, commands: paletteCommands()}
	m.filter("")
	return m
}

// Init implements View.
func (m *PaletteModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *PaletteModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissOverlayMsg{} }
		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+j":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			picked := m.commands[m.matches[m.cursor]].msg
			return m, tea.Batch(
				func() tea.Msg { return picked },
				func() tea.Msg { return DismissOverlayMsg{} },
			)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter(strings.TrimSpace(m.input.Value()))
	return m, cmd
}

// filter rebuilds the match list for the query. An empty query lists every
// command (discovery); otherwise matches come back ranked by fuzzy score.
func (m *PaletteModal) filter(query string) {
	prev := -1
	if m.cursor < len(m.matches) && len(m.matches) > 0 {
		prev = m.matches[m.cursor]
	}
	if query == "" {
		m.matches = make([]int, len(m.commands))
		for i := range m.commands {
			m.matches[i] = i
		}
	} else {
		found := fuzzy.FindFrom(query, commandSource(m.commands))
		m.matches = make([]int, len(found))
		for i, f := range found {
			m.matches[i] = f.Index
		}
	}
	m.cursor = 0
	for i, idx := range m.matches {
		if idx == prev {
			m.cursor = i
			break
		}
	}
}

// Matches returns the currently matching command names, ranked.
func (m *PaletteModal) Matches() []string {
	out := make([]string, len(m.matches))
	for i, idx := range m.matches {
		out[i] = m.commands[idx].name
	}
	return out
}

// View implements View.
func (m *PaletteModal) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Commands"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if len(m.matches) == 0 {
		b.WriteString(Styles.Muted.Render("no matching commands"))
	}
	for i, idx := range m.matches {
		if i > 0 {
			b.WriteByte('\n')
		}
		c := m.commands[idx]
		if i == m.cursor {
			b.WriteString(Styles.Selected.Render("> " + c.name))
			b.WriteString(Styles.Muted.Render("  " + c.help))
		} else {
			b.WriteString(Styles.Normal.Render("  " + c.name))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(Styles.Muted.Render("Enter: run  Esc: cancel"))
	return Styles.Box.Render(b.String())
}
