package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"glide/internal/config"
	"glide/internal/document"
	"glide/internal/eventbus"
	"glide/internal/store"
	"glide/internal/ui"
)

const usage = `Usage: glide [flags] <file>

Glide is a terminal pager with smooth, animated scrolling.

Flags:
`

func main() {
	var (
		configPath string
		logLevel   string
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file (default <user config dir>/glide/config.toml)")
	flag.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides the config)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), configPath, logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "glide: %v\n", err)
		os.Exit(1)
	}
}

func run(path, configPath, logLevel string) error {
	cfg, err := config.NewConfigService(configPath).Load()
	if err != nil {
		return err
	}

	logger, closeLog := setupLogging(cfg.Log, logLevel)
	defer closeLog()

	doc, err := document.Load(path, document.Options{Style: cfg.UI.HighlightStyle, Highlight: true})
	if err != nil {
		return err
	}
	logger.Info("document loaded", "path", doc.Path, "language", doc.Language, "lines", doc.LineCount())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create event bus
	bus := eventbus.New(logger)
	defer bus.Close()
	configSvc := config.NewConfigServiceWithBus(configPath, bus)

	opts := ui.Options{Config: cfg, Document: doc, Bus: bus, Logger: logger}
	var positions *store.Store
	if cfg.UI.RememberPosition {
		positions, err = store.Open(cfg.PositionsPath())
		if err != nil {
			logger.Warn("reading positions disabled", "error", err)
		} else {
			defer positions.Close()
			unsubscribe := positions.Track(bus, logger)
			defer unsubscribe()
			opts.Positions = positions
		}
	}

	model := ui.NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.SetProgram(p)

	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		changed, ok := e.(eventbus.ConfigChangedEvent)
		if !ok {
			return
		}
		reloaded, err := configSvc.LoadFromPath(changed.Path)
		if err != nil {
			logger.Error("failed to reload config", "path", changed.Path, "error", err)
			return
		}
		p.Send(ui.ConfigChangedMsg{Config: reloaded})
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})

	if watcher, err := config.NewWatcher(configSvc, bus, logger); err != nil {
		logger.Warn("config hot reload disabled", "error", err)
	} else {
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if os.Getenv("GLIDE_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if m, ok := final.(*ui.Model); ok && positions != nil {
		docPath, offset := m.Position()
		saveCtx, cancelSave := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancelSave()
		if err := positions.Record(saveCtx, docPath, offset); err != nil {
			logger.Warn("failed to save reading position", "error", err)
		}
	}
	logger.Info("exited normally")
	return nil
}

// setupLogging writes text logs to the configured file; the terminal belongs
// to the UI.
func setupLogging(settings config.LogSettings, override string) (*slog.Logger, func()) {
	if override != "" {
		settings.Level = override
	}
	level, err := settings.SlogLevel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "glide: %v, using info\n", err)
		level = slog.LevelInfo
	}

	if settings.File == "" {
		return slog.New(slog.DiscardHandler), func() {}
	}
	logFile, err := os.OpenFile(settings.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glide: could not open log file: %v\n", err)
		return slog.New(slog.DiscardHandler), func() {}
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = logFile.Close() }
}
