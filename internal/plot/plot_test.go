package plot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multibrot/internal/colouring"
)

// fakeGrid records every pixel write for assertions.
type fakeGrid struct {
	width, height int
	writes        [][]int
	last          [][]colouring.RGB
}

func newFakeGrid(width, height int) *fakeGrid {
	g := &fakeGrid{width: width, height: height}
	g.writes = make([][]int, height)
	g.last = make([][]colouring.RGB, height)
	for y := range g.writes {
		g.writes[y] = make([]int, width)
		g.last[y] = make([]colouring.RGB, width)
	}
	return g
}

func (g *fakeGrid) Width() int  { return g.width }
func (g *fakeGrid) Height() int { return g.height }

func (g *fakeGrid) SetPixel(x, y int, c colouring.RGB) {
	g.writes[y][x]++
	g.last[y][x] = c
}

func (g *fakeGrid) totalWrites() int {
	var n int
	for _, row := range g.writes {
		for _, w := range row {
			n += w
		}
	}
	return n
}

func TestRender_WritesEveryPixelOnce(t *testing.T) {
	grid := newFakeGrid(40, 30)
	p := New(grid)

	ch, err := p.Render(context.Background())
	require.NoError(t, err)

	for y := range grid.writes {
		for x, w := range grid.writes[y] {
			require.Equalf(t, 1, w, "pixel (%d,%d) written %d times", x, y, w)
		}
	}

	v := p.View()
	assert.Equal(t, v.FromX, ch.FromX)
	assert.Equal(t, v.ToX, ch.ToX)
	assert.Equal(t, v.FromY, ch.FromY)
	assert.Equal(t, v.ToY, ch.ToY)
	assert.Equal(t, DefaultMaxIteration, ch.MaxIteration)
	assert.Equal(t, DefaultExponent, ch.Exponent)
	assert.GreaterOrEqual(t, ch.Elapsed.Nanoseconds(), int64(0))
}

func TestRender_InteriorIsBlack(t *testing.T) {
	grid := newFakeGrid(40, 30)
	p := New(grid)
	_, err := p.Render(context.Background())
	require.NoError(t, err)

	// The default viewport centers the y axis on 0, but with an even pixel
	// count no sample row lands exactly on it. The origin column still
	// contains interior points; spot-check the sample nearest the origin.
	black := 0
	for y := range grid.last {
		for x := range grid.last[y] {
			if grid.last[y][x] == (colouring.RGB{}) {
				black++
			}
		}
	}
	assert.Greater(t, black, 0, "the Mandelbrot interior must render black")
	assert.Less(t, black, 40*30, "the exterior must not render black")
}

func TestMove_ShiftsBySpanFraction(t *testing.T) {
	grid := newFakeGrid(8, 6)
	p := New(grid)

	ch, err := p.Move(context.Background(), 1, 0, 5)
	require.NoError(t, err)
	assert.InDelta(t, -1.7, ch.FromX, 1e-12)
	assert.InDelta(t, 2.3, ch.ToX, 1e-12)
	assert.InDelta(t, -1.5, ch.FromY, 1e-12)
	assert.InDelta(t, 1.5, ch.ToY, 1e-12)

	// Fine pan: 50 steps moves a tenth as far.
	ch, err = p.Move(context.Background(), 0, -1, 50)
	require.NoError(t, err)
	assert.InDelta(t, -1.56, ch.FromY, 1e-12)
	assert.InDelta(t, 1.44, ch.ToY, 1e-12)
}

func TestMove_DefaultSteps(t *testing.T) {
	grid := newFakeGrid(8, 6)
	p := New(grid)
	ch, err := p.Move(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, -1.7, ch.FromX, 1e-12, "steps <= 0 must behave as %d", DefaultPanSteps)
}

func TestZoom_InThenOutRoundTrips(t *testing.T) {
	grid := newFakeGrid(8, 6)
	p := New(grid)

	_, err := p.Zoom(context.Background(), -2.0)
	require.NoError(t, err)
	v := p.View()
	assert.InDelta(t, 2.0, v.SpanX(), 1e-12, "zooming in by 2 halves the span")

	_, err = p.Zoom(context.Background(), 2.0)
	require.NoError(t, err)
	v = p.View()
	assert.InDelta(t, -2.5, v.FromX, 1e-9)
	assert.InDelta(t, 1.5, v.ToX, 1e-9)
	assert.InDelta(t, -1.5, v.FromY, 1e-9)
	assert.InDelta(t, 1.5, v.ToY, 1e-9)
}

func TestZoom_DegenerateFactorRejected(t *testing.T) {
	grid := newFakeGrid(8, 6)
	p := New(grid)
	before := p.View()

	_, err := p.Zoom(context.Background(), 0)
	require.ErrorIs(t, err, ErrDegenerateZoom)
	assert.Equal(t, before, p.View(), "a rejected zoom must not move the viewport")
	assert.Equal(t, 0, grid.totalWrites(), "a rejected zoom must not render")
}

func TestZero_RecentersPreservingSpans(t *testing.T) {
	grid := newFakeGrid(8, 6)
	p := New(grid)

	_, err := p.Move(context.Background(), 2, 1, 5)
	require.NoError(t, err)
	ch, err := p.Zero(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, -2.0, ch.FromX, 1e-12)
	assert.InDelta(t, 2.0, ch.ToX, 1e-12)
	assert.InDelta(t, -1.5, ch.FromY, 1e-12)
	assert.InDelta(t, 1.5, ch.ToY, 1e-12)
}

func TestAdjustMaxIteration(t *testing.T) {
	grid := newFakeGrid(8, 6)
	p := New(grid)

	ch, err := p.AdjustMaxIteration(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, 100, ch.MaxIteration)

	// Dropping to exactly the floor is allowed.
	ch, err = p.AdjustMaxIteration(context.Background(), -90)
	require.NoError(t, err)
	assert.Equal(t, 10, ch.MaxIteration)
}

func TestAdjustMaxIteration_FloorRejected(t *testing.T) {
	grid := newFakeGrid(8, 6)
	p := New(grid)

	_, err := p.AdjustMaxIteration(context.Background(), -1000)
	require.ErrorIs(t, err, ErrIterationFloor)
	assert.Equal(t, DefaultMaxIteration, p.MaxIteration(), "rejected change must leave state untouched")
	assert.Equal(t, 0, grid.totalWrites(), "rejected change must not render")
}

func TestAdjustExponent(t *testing.T) {
	grid := newFakeGrid(8, 6)
	p := New(grid)

	ch, err := p.AdjustExponent(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, ch.Exponent, 1e-12)

	ch, err = p.AdjustExponent(context.Background(), -2.95)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, ch.Exponent, 1e-12)
}

func TestAdjustExponent_FloorRejected(t *testing.T) {
	grid := newFakeGrid(8, 6)
	p := New(grid)

	_, err := p.AdjustExponent(context.Background(), -2)
	require.ErrorIs(t, err, ErrExponentFloor)
	assert.Equal(t, DefaultExponent, p.Exponent())
	assert.Equal(t, 0, grid.totalWrites())
}

func TestReset_RestoresDefaults(t *testing.T) {
	grid := newFakeGrid(8, 6)
	p := New(grid)
	ctx := context.Background()

	_, err := p.Move(ctx, 1, 1, 5)
	require.NoError(t, err)
	_, err = p.Zoom(ctx, -2.0)
	require.NoError(t, err)
	_, err = p.AdjustMaxIteration(ctx, 120)
	require.NoError(t, err)
	_, err = p.AdjustExponent(ctx, 0.5)
	require.NoError(t, err)

	ch, err := p.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, Viewport{FromX: -2.5, ToX: 1.5, FromY: -1.5, ToY: 1.5}, p.View())
	assert.Equal(t, DefaultMaxIteration, ch.MaxIteration)
	assert.Equal(t, DefaultExponent, ch.Exponent)
}

func TestSetColouring_ChangesPixelsOnly(t *testing.T) {
	grid := newFakeGrid(16, 12)
	p := New(grid)
	ctx := context.Background()

	_, err := p.Render(ctx)
	require.NoError(t, err)
	before := p.View()

	ch, err := p.SetColouring(ctx, colouring.Green)
	require.NoError(t, err)
	assert.Equal(t, colouring.Green, p.Colouring())
	assert.Equal(t, before, p.View(), "colour swap must not move the viewport")
	assert.Equal(t, before.FromX, ch.FromX)

	// Every written colour is now a shade of green.
	for y := range grid.last {
		for x := range grid.last[y] {
			c := grid.last[y][x]
			assert.Zero(t, c.R)
			assert.Zero(t, c.B)
		}
	}
}
