package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/config"
	"lookout/internal/domain"
	"lookout/internal/download"
	"lookout/internal/eventbus"
	"lookout/internal/pixabay"
	"lookout/internal/restcountries"
	"lookout/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath, startTab, logPath string
	flag.StringVar(&configPath, "config", "", "Path to the configuration file")
	flag.StringVar(&startTab, "tab", "", "Tab to start on: gallery or countries")
	flag.StringVar(&logPath, "log", defaultLogPath(), "Path to the log file")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg := loadOrCreateConfig(configSvc)

	switch startTab {
	case "":
	case string(domain.WidgetGallery), string(domain.WidgetCountries):
		cfg.UI.StartTab = startTab
	default:
		fmt.Printf("Unknown tab %q, expected gallery or countries\n", startTab)
		os.Exit(2)
	}

	if cfg.Gallery.APIKey == "" {
		log.Printf("No image API key configured; set gallery.api_key in %s or LOOKOUT_GALLERY_API_KEY", configSvc.Path())
	}

	// Initialize services
	searcher := pixabay.NewClient(cfg.Gallery.BaseURL, pixabay.Options{
		APIKey:      cfg.Gallery.APIKey,
		PerPage:     cfg.Gallery.PerPage,
		ImageType:   cfg.Gallery.ImageType,
		Orientation: cfg.Gallery.Orientation,
		SafeSearch:  cfg.Gallery.SafeSearch,
	}, cfg.Gallery.Timeout(), cfg.Gallery.RequestsPerMinute)

	finder := restcountries.NewClient(cfg.Countries.BaseURL, cfg.Countries.Fields,
		cfg.Countries.Timeout(), cfg.Countries.RequestsPerMinute)

	downloads := download.NewService(download.Options{
		Dir:          cfg.Download.Dir,
		ReleaseDelay: cfg.Download.ReleaseDelay(),
		Bus:          bus,
	})

	// Create UI model
	uiModel := ui.NewModel(cfg, ui.Dependencies{
		Bus:        bus,
		Searcher:   searcher,
		Finder:     finder,
		Downloader: downloads,
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventDownloadStarted,
		eventbus.EventDownloadCompleted,
		eventbus.EventDownloadFailed,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, forward)
	}

	// The rest is only worth a log line
	bus.Subscribe(eventbus.EventNoticeRaised, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.NoticeRaisedEvent); ok {
			log.Printf("%s: [%s] %s", ev.Widget, ev.Notice.Severity, ev.Notice.Text)
		}
	})
	bus.Subscribe(eventbus.EventHistoryRecorded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.HistoryRecordedEvent); ok {
			log.Printf("gallery: history chip '%s'", ev.Query)
		}
	})
	bus.Subscribe(eventbus.EventTempReleased, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.TempReleasedEvent); ok {
			log.Printf("download: released %s", ev.Path)
		}
	})

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && err != tea.ErrProgramKilled {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	// Let pending temporary files go before exiting
	downloads.Wait()

	// Cleanup
	close(eventChan)
	cancel()
}

// loadOrCreateConfig loads the configuration file or writes the defaults when there is none
func loadOrCreateConfig(configSvc config.ConfigService) *config.Config {
	path := configSvc.Path()

	if _, err := os.Stat(path); err == nil {
		cfg, err := configSvc.Load()
		if err == nil {
			log.Printf("Loaded config from %s", path)
			return cfg
		}
		log.Printf("Error loading config: %v", err)
		return config.DefaultConfig()
	}

	// Load still applies LOOKOUT_* overrides on top of the defaults
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	log.Printf("Creating new config at %s", path)
	if err := configSvc.Save(config.DefaultConfig()); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "lookout.log"
	}
	dir = filepath.Join(dir, "lookout")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "lookout.log"
	}
	return filepath.Join(dir, "lookout.log")
}
