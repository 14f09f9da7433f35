package ui

import (
	"multibrot/internal/colouring"
	"multibrot/internal/plot"
)

// MoveMsg pans the viewport by DX/DY span units. Steps controls granularity;
// 0 uses the plotter default, larger values pan finer.
type MoveMsg struct {
	DX, DY int
	Steps  int
}

// ZoomMsg rescales the viewport: negative factors zoom in, positive out.
type ZoomMsg struct {
	Factor float64
}

// ZeroMsg recenters the viewport on the origin.
type ZeroMsg struct{}

// AdjustIterationMsg changes the iteration ceiling by Delta.
type AdjustIterationMsg struct {
	Delta int
}

// AdjustExponentMsg changes the multibrot exponent by Delta.
type AdjustExponentMsg struct {
	Delta float64
}

// ResetMsg restores viewport and parameters to their defaults.
type ResetMsg struct{}

// SetColourMsg selects a colour scheme for the plot.
type SetColourMsg struct {
	Map colouring.Map
}

// ShowPaletteMsg opens the command palette overlay.
type ShowPaletteMsg struct{}

// DismissOverlayMsg closes the active overlay.
type DismissOverlayMsg struct{}

// PlotChangedMsg carries the snapshot from a completed render; the shell
// turns it into the header and footer status lines.
type PlotChangedMsg struct {
	Changed plot.Changed
}

// flashClearMsg clears the transient rejected-change alert.
type flashClearMsg struct{}
