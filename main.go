// Package main is the entry point for the agentdeck application.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/billie-coop/agentdeck/internal/config"
	"github.com/billie-coop/agentdeck/internal/history"
	"github.com/billie-coop/agentdeck/internal/launchd"
	"github.com/billie-coop/agentdeck/internal/logging"
	"github.com/billie-coop/agentdeck/internal/tui"
	"github.com/billie-coop/agentdeck/internal/tui/events"
	"github.com/billie-coop/agentdeck/internal/tui/styles"
	"github.com/billie-coop/agentdeck/internal/watcher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config.json (default ~/.agentdeck/config.json)")
	debug := flag.Bool("debug", false, "log at debug level")
	theme := flag.String("theme", "", "theme to use for this run")
	flag.Parse()

	cfgMgr, err := newConfigManager(*configPath)
	if err != nil {
		return err
	}
	if err := cfgMgr.Load(); err != nil {
		return err
	}
	cfg := cfgMgr.Get()

	level := cfg.LogLevel
	if *debug {
		level = "debug"
	}
	var logPath string
	if cfg.LogFile != "" {
		logPath = cfgMgr.Resolve(cfg.LogFile)
	}
	logger, closeLog, err := logging.New(logging.Options{Level: level, Format: cfg.LogFormat, Path: logPath})
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.Sugar()
	log.Infow("starting", "config", cfgMgr.ConfigPath())

	themeName := cfg.Theme
	if *theme != "" {
		themeName = *theme
	}
	themes := styles.NewManager(themeName)
	if themes.Current().Name != themeName {
		log.Warnw("unknown theme, using default", "theme", themeName)
	}
	styles.SetDefaultManager(themes)

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to find home directory: %w", err)
	}
	dirs := launchd.DefaultDirs(home).WithOverrides(cfg.Locations)

	// Without a history store saves still work; only revert is lost.
	var journal launchd.Journal
	var startup []events.Event
	store, err := history.Open(context.Background(), cfgMgr.Resolve(cfg.HistoryDB))
	if err != nil {
		log.Warnw("history unavailable", "path", cfg.HistoryDB, "error", err)
		startup = append(startup, events.Event{
			Type: events.StatusMessageEvent,
			Payload: events.StatusMessagePayload{
				Message: "⚠ History unavailable, revert disabled: " + err.Error(),
				Type:    "warning",
			},
		})
	} else {
		defer store.Close()
		journal = store
	}

	runner := launchd.ExecRunner{}
	prober := launchd.NewProber(launchd.ProberOptions{
		Launchctl: cfg.Launchctl,
		Runner:    runner,
		TTL:       cfg.ProbeTTL.Std(),
		Logger:    log.Named("probe"),
	})
	reloader := launchd.NewReloader(cfg.Launchctl, runner, log.Named("reload"))
	saver := launchd.NewSaver(journal, reloader, cfg.HistoryKeep, log.Named("save"))

	broker := events.NewBroker()
	defer broker.Clear()

	model := tui.New(tui.Services{
		Dirs:      dirs,
		Prober:    prober,
		Saver:     saver,
		Events:    broker,
		Log:       log,
		StatusTTL: cfg.StatusTTL.Std(),
		SaveTheme: func(name string) error {
			return cfgMgr.Set("theme", name)
		},
	})
	defer model.Close()
	for _, e := range startup {
		broker.Publish(e)
	}

	// The model subscribes in New, so watcher events from here on reach it.
	if cfg.Watch {
		if w := startWatcher(cfg, dirs, broker, log); w != nil {
			defer w.Stop()
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	if model.Dirty() {
		log.Infow("exited with unsaved changes")
	}
	return nil
}

func newConfigManager(path string) (*config.Manager, error) {
	if path != "" {
		return config.NewManagerForFile(path), nil
	}
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	return config.NewManager(dir), nil
}

// startWatcher publishes debounced changes in the scanned directories to
// broker. Failure to watch is reported through the broker, not fatal.
func startWatcher(cfg *config.Config, dirs launchd.Dirs, broker *events.Broker, log *zap.SugaredLogger) *watcher.FileWatcher {
	w := watcher.NewWatcher(cfg.WatchDebounce.Std(), func(paths []string) {
		log.Debugw("descriptors changed", "dirs", watcher.Dirs(paths), "files", len(paths))
		broker.Publish(events.Event{
			Type:    events.FilesChangedEvent,
			Payload: events.FilesChangedPayload{Paths: paths},
		})
	})
	w.SetLogger(log.Named("watch"))

	var watchDirs []string
	for _, loc := range launchd.Locations {
		watchDirs = append(watchDirs, dirs[loc])
	}
	if err := w.Watch(watchDirs...); err != nil {
		log.Warnw("directory watch unavailable", "error", err)
		broker.Publish(events.Event{
			Type:    events.WatchErrorEvent,
			Payload: events.WatchErrorPayload{Err: err},
		})
		w.Stop()
		return nil
	}
	return w
}
