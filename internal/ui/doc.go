// Package ui is the terminal front end for the multibrot plotter, built on
// Bubble Tea.
//
// Core pieces:
//   - Canvas: truecolor half-block pixel grid the plotter renders onto
//   - AppModel: root model composing header, canvas, and footer
//   - KeybindRegistry: key-to-command table driving every plot action
//   - PaletteModal: fuzzy-searchable command palette over the same actions
package ui
