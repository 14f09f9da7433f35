package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"multibrot/internal/colouring"
	"multibrot/internal/telemetry"
	"multibrot/internal/ui"
)

func main() {
	var width, height int
	flag.IntVar(&width, "width", 0, "fixed canvas width in pixels (0 fits the terminal)")
	flag.IntVar(&height, "height", 0, "fixed canvas height in pixels (0 fits the terminal)")
	flag.Parse()

	ctx := context.Background()
	tracer, shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry setup: %v\n", err)
		os.Exit(1)
	}
	defer shutdown(ctx)

	colours := colouring.Default
	if name := os.Getenv("MULTIBROT_COLOURS"); name != "" {
		colours, err = colouring.Parse(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "MULTIBROT_COLOURS: %v\n", err)
			os.Exit(1)
		}
	}

	model := ui.NewAppModel(ui.Config{
		Width:   width,
		Height:  height,
		Colours: colours,
		Tracer:  tracer,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
