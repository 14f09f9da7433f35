package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"multibrot/internal/colouring"
)

// Canvas is a truecolor pixel grid rendered with half blocks: each terminal
// cell shows two vertically stacked pixels, the upper one as the ▀ foreground
// and the lower as the cell background. Implements plot.PixelGrid.
//
// Writes land in a buffer; View renders the whole buffer at once, so a frame
// is only ever observed complete.
type Canvas struct {
	width, height int
	cells         [][]colouring.RGB

	styles map[[2]colouring.RGB]lipgloss.Style
}

// NewCanvas creates a canvas of width x height pixels. Odd heights are
// rounded up to keep two pixel rows per cell row.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{styles: make(map[[2]colouring.RGB]lipgloss.Style)}
	c.Resize(width, height)
	return c
}

// Resize reallocates the pixel buffer, discarding the current frame.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if height%2 != 0 {
		height++
	}
	c.width, c.height = width, height
	c.cells = make([][]colouring.RGB, height)
	for y := range c.cells {
		c.cells[y] = make([]colouring.RGB, width)
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// SetPixel writes one pixel. Out-of-range coordinates are ignored.
func (c *Canvas) SetPixel(x, y int, colour colouring.RGB) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = colour
}

// View renders the buffered frame, one terminal row per two pixel rows.
func (c *Canvas) View() string {
	var b strings.Builder
	for y := 0; y < c.height; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.width; x++ {
			b.WriteString(c.cellStyle(c.cells[y][x], c.cells[y+1][x]).Render("▀"))
		}
	}
	return b.String()
}

// cellStyle caches one style per colour pair; a frame reuses few distinct
// pairs, and building lipgloss styles per cell dominates View otherwise.
func (c *Canvas) cellStyle(top, bottom colouring.RGB) lipgloss.Style {
	k := [2]colouring.RGB{top, bottom}
	if s, ok := c.styles[k]; ok {
		return s
	}
	if len(c.styles) >= 1<<13 {
		clear(c.styles)
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(top.Hex())).
		Background(lipgloss.Color(bottom.Hex()))
	c.styles[k] = s
	return s
}
