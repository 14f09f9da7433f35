package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps key presses to commands. Keys use tea.KeyMsg.String()
// notation: "q", "pgup", "ctrl+r", "shift+up". A command may be bound under
// several aliases (arrows, wasd and hjkl all pan).
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string][]string // desc -> aliases, only for hinted bindings
	order        []string            // hinted descriptions in bind order
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string][]string),
	}
}

// Bind registers a command under one or more key aliases without a help hint.
func (r *KeybindRegistry) Bind(cmd tea.Cmd, keys ...string) {
	for _, k := range keys {
		r.bindings[k] = cmd
	}
}

// BindWithDesc registers a command with a description shown in the help line.
func (r *KeybindRegistry) BindWithDesc(cmd tea.Cmd, desc string, keys ...string) {
	r.Bind(cmd, keys...)
	if _, seen := r.descriptions[desc]; !seen {
		r.order = append(r.order, desc)
	}
	r.descriptions[desc] = append(r.descriptions[desc], keys...)
}

// Lookup returns the command bound to a key, or nil.
func (r *KeybindRegistry) Lookup(k string) tea.Cmd {
	return r.bindings[k]
}

// HelpBindings returns the hinted bindings in bind order for bubbles/help.
func (r *KeybindRegistry) HelpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(r.order))
	for _, desc := range r.order {
		aliases := r.descriptions[desc]
		out = append(out, key.NewBinding(
			key.WithKeys(aliases...),
			key.WithHelp(aliases[0], desc),
		))
	}
	return out
}

// KeyMap adapts a KeybindRegistry to help.KeyMap for bubbles/help.Model.
type KeyMap struct {
	registry *KeybindRegistry
}

var _ help.KeyMap = KeyMap{}

// ShortHelp returns the hinted bindings for the one-line help view.
func (km KeyMap) ShortHelp() []key.Binding {
	if km.registry == nil {
		return nil
	}
	return km.registry.HelpBindings()
}

// FullHelp returns a single column with the same bindings.
func (km KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}
