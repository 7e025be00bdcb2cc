package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"triviabrowse/internal/browse"
	"triviabrowse/internal/client"
	"triviabrowse/internal/config"
	"triviabrowse/internal/eventbus"
	"triviabrowse/internal/logging"
	"triviabrowse/internal/logging/events"
	"triviabrowse/internal/ui"
)

func main() {
	settings := config.MustLoad()
	logging.Configure(settings.Config.Logging.FilePath)
	logging.SetTraceEnabled(settings.Config.Logging.Trace)

	events.App.Start(startupTracePayload(settings))

	bus := newTracedBus()
	defer bus.Close()

	if settings.WriteConfig {
		if err := writeConfig(settings, bus); err != nil {
			logging.Error(err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", settings.Path)
		return
	}

	err := run(settings, bus)
	events.App.Stop(err)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newTracedBus creates the event bus and mirrors every event to the trace log
func newTracedBus() eventbus.EventBus {
	bus := eventbus.New()
	for _, eventType := range eventbus.AllEventTypes {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			events.App.Event(string(eventType), e)
		})
	}
	return bus
}

func run(settings config.Settings, bus eventbus.EventBus) error {
	cfg := settings.Config

	width, height, err := terminalSize(int(os.Stdout.Fd()))
	if err != nil {
		return err
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout()),
		client.WithToken(cfg.Token),
	)
	machine := browse.New(c,
		browse.WithBus(bus),
		browse.WithContext(ctx),
		browse.WithStaleGuard(cfg.DiscardStaleResponses),
	)
	model := ui.NewModel(cfg, machine, ui.WithInitialSize(width, height))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Forward domain events to the status line
	for _, eventType := range eventbus.AllEventTypes {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}

	logging.Printf("starting against %s", c.BaseURL())
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	logging.Printf("UI exited normally")
	return nil
}

// writeConfig saves the effective configuration to its path
func writeConfig(settings config.Settings, bus eventbus.EventBus) error {
	svc := config.NewConfigServiceWithBus(settings.Path, bus)
	if err := svc.Save(settings.Config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(settings config.Settings) map[string]interface{} {
	cfg := settings.Config
	payload := map[string]interface{}{
		"argv":       os.Args[1:],
		"configPath": settings.Path,
		"baseURL":    cfg.BaseURL,
		"timeout":    cfg.RequestTimeout,
		"discard":    cfg.DiscardStaleResponses,
		"trace":      cfg.Logging.Trace,
		"logFile":    cfg.Logging.FilePath,
		"hasToken":   cfg.Token != "",
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = term.IsTerminal(int(os.Stdout.Fd()))
	return payload
}

var errNotTerminal = errors.New("stdout is not a terminal; run triviabrowse interactively")

// terminalSize reports the size of the terminal on fd.
func terminalSize(fd int) (width, height int, err error) {
	if !term.IsTerminal(fd) {
		return 0, 0, errNotTerminal
	}
	return term.GetSize(fd)
}
