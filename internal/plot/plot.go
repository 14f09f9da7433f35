// Package plot owns the viewport into the complex plane and drives full-frame
// multibrot renders onto a pixel grid.
package plot

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"multibrot/internal/colouring"
	"multibrot/internal/coords"
	"multibrot/internal/escape"
)

// Construction-time defaults; Reset restores all of them.
const (
	DefaultMaxIteration = 80
	DefaultExponent     = 2.0

	// MinIteration is the floor below which iteration changes are rejected.
	MinIteration = 10

	// DefaultPanSteps divides each axis span into pan step units.
	DefaultPanSteps = 5
)

// Rejected-change and guard conditions. All are non-fatal: state is left
// untouched, nothing is rendered, no Changed snapshot is produced. The shell
// surfaces them as an alert, not an error dialog.
var (
	ErrIterationFloor = errors.New("max iteration must stay at or above 10")
	ErrExponentFloor  = errors.New("exponent must stay above zero")
	ErrDegenerateZoom = errors.New("zoom factor would collapse the viewport")
)

// Viewport is the rectangle of the complex plane currently mapped onto the
// pixel grid. Invariant: FromX < ToX and FromY < ToY.
type Viewport struct {
	FromX, ToX coords.Real
	FromY, ToY coords.Real
}

// DefaultViewport frames the classic Mandelbrot set.
func DefaultViewport() Viewport {
	return Viewport{FromX: -2.5, ToX: 1.5, FromY: -1.5, ToY: 1.5}
}

// SpanX is the width of the viewport in plane units.
func (v Viewport) SpanX() coords.Real { return v.ToX - v.FromX }

// SpanY is the height of the viewport in plane units.
func (v Viewport) SpanY() coords.Real { return v.ToY - v.FromY }

// PixelGrid is the surface the plotter draws onto. Writes happen only during
// a render; no read-back is required.
type PixelGrid interface {
	Width() int
	Height() int
	SetPixel(x, y int, c colouring.RGB)
}

// Changed is the immutable snapshot produced after every completed render.
type Changed struct {
	Exponent     float64
	FromX, ToX   coords.Real
	FromY, ToY   coords.Real
	MaxIteration int
	Elapsed      time.Duration
}

// Plotter holds the viewport and plot parameters and renders frames onto its
// grid. It is strictly synchronous and single-caller: every operation runs a
// full render to completion before returning its snapshot.
type Plotter struct {
	grid PixelGrid

	view         Viewport
	maxIteration int
	exponent     float64
	colours      colouring.Map

	eval   *escape.Evaluator
	tracer oteltrace.Tracer
}

// Option configures a Plotter.
type Option func(*Plotter)

// WithColouring sets the initial colour scheme.
func WithColouring(m colouring.Map) Option {
	return func(p *Plotter) { p.colours = m }
}

// WithTracer records one span per rendered frame on the given tracer.
func WithTracer(t oteltrace.Tracer) Option {
	return func(p *Plotter) { p.tracer = t }
}

// WithCacheSize bounds the escape memoization cache.
func WithCacheSize(n int) Option {
	return func(p *Plotter) { p.eval = escape.NewEvaluator(n) }
}

// New creates a plotter over the grid with default viewport and parameters.
// Nothing is rendered until the first operation.
func New(grid PixelGrid, opts ...Option) *Plotter {
	p := &Plotter{
		grid:         grid,
		view:         DefaultViewport(),
		maxIteration: DefaultMaxIteration,
		exponent:     DefaultExponent,
		colours:      colouring.Default,
		eval:         escape.NewEvaluator(0),
		tracer:       noop.NewTracerProvider().Tracer("multibrot"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// View returns the current viewport.
func (p *Plotter) View() Viewport { return p.view }

// MaxIteration returns the current iteration ceiling.
func (p *Plotter) MaxIteration() int { return p.maxIteration }

// Exponent returns the current multibrot exponent.
func (p *Plotter) Exponent() float64 { return p.exponent }

// Colouring returns the active colour scheme.
func (p *Plotter) Colouring() colouring.Map { return p.colours }

// Render plots one full frame: every pixel column is paired with its sample
// coordinate on the x axis, every row on the y axis, and each point's escape
// count is mapped to a colour and written to the grid.
func (p *Plotter) Render(ctx context.Context) (Changed, error) {
	_, span := p.tracer.Start(ctx, "plot.render", oteltrace.WithAttributes(
		attribute.Float64("plot.exponent", p.exponent),
		attribute.Int("plot.max_iteration", p.maxIteration),
		attribute.Float64("plot.from_x", p.view.FromX),
		attribute.Float64("plot.to_x", p.view.ToX),
		attribute.Float64("plot.from_y", p.view.FromY),
		attribute.Float64("plot.to_y", p.view.ToY),
		attribute.String("plot.colours", p.colours.String()),
	))
	defer span.End()

	start := time.Now()
	for xPixel, xPoint := range coords.Samples(p.view.FromX, p.view.ToX, p.grid.Width()) {
		for yPixel, yPoint := range coords.Samples(p.view.FromY, p.view.ToY, p.grid.Height()) {
			n := p.eval.Count(xPoint, yPoint, p.exponent, p.maxIteration)
			p.grid.SetPixel(xPixel, yPixel, p.colours.Colour(n, p.maxIteration))
		}
	}
	elapsed := time.Since(start)
	span.SetAttributes(attribute.Int64("plot.elapsed_us", elapsed.Microseconds()))

	return Changed{
		Exponent:     p.exponent,
		FromX:        p.view.FromX,
		ToX:          p.view.ToX,
		FromY:        p.view.FromY,
		ToY:          p.view.ToY,
		MaxIteration: p.maxIteration,
		Elapsed:      elapsed,
	}, nil
}

// Move pans the viewport by dx and dy units of span/steps on each axis,
// preserving the zoom level. Steps below 1 fall back to DefaultPanSteps;
// larger step counts give finer movement.
func (p *Plotter) Move(ctx context.Context, dx, dy, steps int) (Changed, error) {
	if steps < 1 {
		steps = DefaultPanSteps
	}
	xStep := coords.Real(dx) * p.view.SpanX() / coords.Real(steps)
	yStep := coords.Real(dy) * p.view.SpanY() / coords.Real(steps)
	p.view.FromX, p.view.ToX = coords.Shift(p.view.FromX, p.view.ToX, xStep)
	p.view.FromY, p.view.ToY = coords.Shift(p.view.FromY, p.view.ToY, yStep)
	return p.Render(ctx)
}

// Zoom rescales both axes about their midpoints. Negative factors zoom in,
// positive factors zoom out; magnitude 1.2 is the standard step and 2.0 the
// fast one. Factors that would collapse or invert a span are rejected.
func (p *Plotter) Zoom(ctx context.Context, factor float64) (Changed, error) {
	fromX, toX := coords.Scale(p.view.FromX, p.view.ToX, factor)
	fromY, toY := coords.Scale(p.view.FromY, p.view.ToY, factor)
	if !(fromX < toX) || !(fromY < toY) {
		return Changed{}, ErrDegenerateZoom
	}
	p.view = Viewport{FromX: fromX, ToX: toX, FromY: fromY, ToY: toY}
	return p.Render(ctx)
}

// Zero recenters the viewport on the origin, preserving each axis's span.
func (p *Plotter) Zero(ctx context.Context) (Changed, error) {
	halfX := p.view.SpanX() / 2
	halfY := p.view.SpanY() / 2
	p.view = Viewport{FromX: -halfX, ToX: halfX, FromY: -halfY, ToY: halfY}
	return p.Render(ctx)
}

// AdjustMaxIteration changes the iteration ceiling by delta, rejecting any
// change that would take it below MinIteration.
func (p *Plotter) AdjustMaxIteration(ctx context.Context, delta int) (Changed, error) {
	if p.maxIteration+delta < MinIteration {
		return Changed{}, ErrIterationFloor
	}
	p.maxIteration += delta
	return p.Render(ctx)
}

// AdjustExponent changes the multibrot exponent by delta. The exponent must
// stay strictly positive.
func (p *Plotter) AdjustExponent(ctx context.Context, delta float64) (Changed, error) {
	if p.exponent+delta <= 0 {
		return Changed{}, ErrExponentFloor
	}
	p.exponent += delta
	return p.Render(ctx)
}

// Reset restores the viewport and parameters to their construction defaults.
func (p *Plotter) Reset(ctx context.Context) (Changed, error) {
	p.view = DefaultViewport()
	p.maxIteration = DefaultMaxIteration
	p.exponent = DefaultExponent
	return p.Render(ctx)
}

// SetColouring swaps the active colour scheme and re-renders with it.
func (p *Plotter) SetColouring(ctx context.Context, m colouring.Map) (Changed, error) {
	p.colours = m
	return p.Render(ctx)
}
