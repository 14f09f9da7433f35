package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	oteltrace "go.opentelemetry.io/otel/trace"

	"multibrot/internal/colouring"
	"multibrot/internal/plot"
)

// Config carries construction options for the shell.
type Config struct {
	// Width and Height fix the canvas size in pixels. When either is 0 the
	// canvas is fitted to the terminal on the first window-size message.
	Width, Height int

	// Colours is the initial colour scheme.
	Colours colouring.Map

	// Tracer records one span per rendered frame, when set.
	Tracer oteltrace.Tracer

	// CacheSize bounds the escape memoization cache; 0 uses the default.
	CacheSize int
}

// AppModel is the root model: header with the viewport bounds, the plot
// canvas, and a footer with render stats and key hints.
type AppModel struct {
	plotter *plot.Plotter
	canvas  *Canvas
	keys    *KeybindRegistry
	overlay View
	help    help.Model

	title    string // viewport bounds
	subtitle string // exponent | iterations | elapsed
	flash    string // transient rejected-change alert

	fixedSize bool
}

var _ tea.Model = (*AppModel)(nil)

// NewAppModel builds the shell. With a fixed canvas size the first frame is
// rendered immediately; otherwise rendering waits for the terminal size.
func NewAppModel(cfg Config) *AppModel {
	fixed := cfg.Width > 0 && cfg.Height > 0
	var canvas *Canvas
	if fixed {
		canvas = NewCanvas(cfg.Width, cfg.Height)
	} else {
		canvas = NewCanvas(0, 0)
	}

	opts := []plot.Option{plot.WithColouring(cfg.Colours)}
	if cfg.Tracer != nil {
		opts = append(opts, plot.WithTracer(cfg.Tracer))
	}
	if cfg.CacheSize > 0 {
		opts = append(opts, plot.WithCacheSize(cfg.CacheSize))
	}

	a := &AppModel{
		plotter:   plot.New(canvas, opts...),
		canvas:    canvas,
		keys:      newPlotKeybinds(),
		help:      help.New(),
		fixedSize: fixed,
	}
	if fixed {
		if ch, err := a.plotter.Render(context.Background()); err == nil {
			a.setStatus(ch)
		}
	}
	return a
}

// newPlotKeybinds is the full key table: arrows/wasd/hjkl pan, shifted keys
// pan finer, brackets and page keys zoom, and the rest mirror the palette.
func newPlotKeybinds() *KeybindRegistry {
	reg := NewKeybindRegistry()

	reg.Bind(msgCmd(MoveMsg{DY: -1}), "up", "w", "k")
	reg.Bind(msgCmd(MoveMsg{DY: -1, Steps: 50}), "shift+up", "W", "K")
	reg.Bind(msgCmd(MoveMsg{DY: 1}), "down", "s", "j")
	reg.Bind(msgCmd(MoveMsg{DY: 1, Steps: 50}), "shift+down", "S", "J")
	reg.Bind(msgCmd(MoveMsg{DX: -1}), "left", "a", "h")
	reg.Bind(msgCmd(MoveMsg{DX: -1, Steps: 50}), "shift+left", "A", "H")
	reg.Bind(msgCmd(MoveMsg{DX: 1}), "right", "d", "l")
	reg.Bind(msgCmd(MoveMsg{DX: 1, Steps: 50}), "shift+right", "D", "L")

	reg.BindWithDesc(msgCmd(ZoomMsg{Factor: -1.2}), "in", "pgup", "]")
	reg.BindWithDesc(msgCmd(ZoomMsg{Factor: 1.2}), "out", "pgdown", "[")
	reg.Bind(msgCmd(ZoomMsg{Factor: -2.0}), "ctrl+pgup", "}")
	reg.Bind(msgCmd(ZoomMsg{Factor: 2.0}), "ctrl+pgdown", "{")

	reg.BindWithDesc(msgCmd(AdjustExponentMsg{Delta: 1}), "mul+", "*", "ctrl+up")
	reg.BindWithDesc(msgCmd(AdjustExponentMsg{Delta: -1}), "mul-", "/", "ctrl+down")
	reg.Bind(msgCmd(AdjustExponentMsg{Delta: 0.05}), "ctrl+shift+up")
	reg.Bind(msgCmd(AdjustExponentMsg{Delta: -0.05}), "ctrl+shift+down")

	reg.BindWithDesc(msgCmd(ZeroMsg{}), "0, 0", "home")
	reg.BindWithDesc(msgCmd(AdjustIterationMsg{Delta: -10}), "res-", ",")
	reg.BindWithDesc(msgCmd(AdjustIterationMsg{Delta: 10}), "res+", ".")
	reg.Bind(msgCmd(AdjustIterationMsg{Delta: -100}), "<")
	reg.Bind(msgCmd(AdjustIterationMsg{Delta: 100}), ">")
	reg.BindWithDesc(msgCmd(ResetMsg{}), "reset", "ctrl+r")

	reg.Bind(msgCmd(SetColourMsg{Map: colouring.Default}), "1")
	reg.Bind(msgCmd(SetColourMsg{Map: colouring.BlueBrown}), "2")
	reg.Bind(msgCmd(SetColourMsg{Map: colouring.Green}), "3")

	reg.BindWithDesc(msgCmd(ShowPaletteMsg{}), "commands", ":", "ctrl+p")
	reg.BindWithDesc(tea.Quit, "exit", "esc", "q", "ctrl+c")

	return reg
}

func msgCmd(m tea.Msg) tea.Cmd {
	return func() tea.Msg { return m }
}

// Init implements tea.Model.
func (a *AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = msg.Width
		if !a.fixedSize {
			w, h := bestSize(msg.Width, msg.Height)
			a.canvas.Resize(w, h)
		}
		return a, a.apply(a.plotter.Render)

	case tea.KeyMsg:
		if a.overlay != nil {
			v, cmd := a.overlay.Update(msg)
			a.overlay = v
			return a, cmd
		}
		if cmd := a.keys.Lookup(msg.String()); cmd != nil {
			return a, cmd
		}
		return a, nil

	case MoveMsg:
		return a, a.apply(func(ctx context.Context) (plot.Changed, error) {
			return a.plotter.Move(ctx, msg.DX, msg.DY, msg.Steps)
		})
	case ZoomMsg:
		return a, a.apply(func(ctx context.Context) (plot.Changed, error) {
			return a.plotter.Zoom(ctx, msg.Factor)
		})
	case ZeroMsg:
		return a, a.apply(a.plotter.Zero)
	case AdjustIterationMsg:
		return a, a.apply(func(ctx context.Context) (plot.Changed, error) {
			return a.plotter.AdjustMaxIteration(ctx, msg.Delta)
		})
	case AdjustExponentMsg:
		return a, a.apply(func(ctx context.Context) (plot.Changed, error) {
			return a.plotter.AdjustExponent(ctx, msg.Delta)
		})
	case ResetMsg:
		return a, a.apply(a.plotter.Reset)
	case SetColourMsg:
		return a, a.apply(func(ctx context.Context) (plot.Changed, error) {
			return a.plotter.SetColouring(ctx, msg.Map)
		})

	case ShowPaletteMsg:
		p := NewPaletteModal()
		a.overlay = p
		return a, p.Init()
	case DismissOverlayMsg:
		a.overlay = nil
		return a, nil

	case PlotChangedMsg:
		a.setStatus(msg.Changed)
		return a, nil
	case flashClearMsg:
		a.flash = ""
		return a, nil
	}

	if a.overlay != nil {
		v, cmd := a.overlay.Update(msg)
		a.overlay = v
		return a, cmd
	}
	return a, nil
}

// apply runs one plot operation to completion. A completed render becomes a
// PlotChangedMsg; a rejected change becomes a bell plus a transient flash,
// with no state change and no frame.
func (a *AppModel) apply(op func(context.Context) (plot.Changed, error)) tea.Cmd {
	ch, err := op(context.Background())
	if err != nil {
		a.flash = err.Error()
		return tea.Batch(bell, clearFlashLater())
	}
	return msgCmd(PlotChangedMsg{Changed: ch})
}

func (a *AppModel) setStatus(ch plot.Changed) {
	a.title = fmt.Sprintf("%.10f, %.10f -> %.10f, %.10f", ch.FromX, ch.FromY, ch.ToX, ch.ToY)
	a.subtitle = fmt.Sprintf("%.2f multibrot | %d iterations | %.4f seconds",
		ch.Exponent, ch.MaxIteration, ch.Elapsed.Seconds())
}

// View implements tea.Model.
func (a *AppModel) View() string {
	header := Styles.Title.Render("Multibrot") + "  " + Styles.Status.Render(a.title)
	if a.overlay != nil {
		return header + "\n" + a.overlay.View()
	}

	status := Styles.Muted.Render(a.subtitle)
	if a.flash != "" {
		status = Styles.Flash.Render(a.flash)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		Styles.Frame.Render(a.canvas.View()),
		status,
		a.help.View(KeyMap{registry: a.keys}),
	)
}

// bestSize fits the canvas to the terminal: prefer a 4:3 plot based on the
// width, fall back to fitting the height. Cell rows hold two pixel rows, so
// the pixel height is twice the cell height.
func bestSize(termWidth, termHeight int) (pixelWidth, pixelHeight int) {
	displayWidth := termWidth - 2   // canvas frame
	displayHeight := termHeight - 4 // frame, header, footer

	bestWidth := displayWidth
	bestHeight := ((displayWidth / 4) * 3) / 2
	if bestHeight >= displayHeight {
		bestHeight = displayHeight
		bestWidth = ((bestHeight / 3) * 4) * 2
	}

	pixelWidth = bestWidth - 2
	pixelHeight = (bestHeight - 2) * 2
	if pixelWidth < 2 {
		pixelWidth = 2
	}
	if pixelHeight < 2 {
		pixelHeight = 2
	}
	return pixelWidth, pixelHeight
}

func bell() tea.Msg {
	fmt.Fprint(os.Stderr, "\a")
	return nil
}

func clearFlashLater() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashClearMsg{}
	})
}
