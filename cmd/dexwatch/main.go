package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dexwatch/dexwatch/internal/config"
	"github.com/dexwatch/dexwatch/internal/dexscreener"
	"github.com/dexwatch/dexwatch/internal/logger"
	"github.com/dexwatch/dexwatch/internal/market"
	"github.com/dexwatch/dexwatch/internal/storage"
	"github.com/dexwatch/dexwatch/internal/ui"
	"github.com/dexwatch/dexwatch/internal/ui/router"
	"github.com/dexwatch/dexwatch/internal/ui/screen"
	"github.com/dexwatch/dexwatch/internal/watchlist"
)

// AppModel is the top-level TUI model: it owns the screen router and turns
// navigation messages into screen transitions.
type AppModel struct {
	services ui.ServiceProvider
	router   *router.Router
	width    int
	height   int
}

// NewAppModel creates the application model rooted at the tokens screen
func NewAppModel(services ui.ServiceProvider) *AppModel {
	return &AppModel{
		services: services,
		router:   router.New(screen.NewTokensScreen(services)),
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		ui.ListenBus(),
		tea.EnterAltScreen,
	)
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.router.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.router, cmd = m.router.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ui.RouterMsg:
		if cmd := m.handleNavigation(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.router, cmd = m.router.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// Keep draining the bus
	cmds = append(cmds, ui.ListenBus())

	return m, tea.Batch(cmds...)
}

// handleNavigation maps a route to a concrete screen
func (m *AppModel) handleNavigation(msg ui.RouterMsg) tea.Cmd {
	switch msg.To {
	case ui.RouteTokens:
		return m.router.Replace(screen.NewTokensScreen(m.services))

	case ui.RouteDetail:
		payload, ok := msg.Payload.(screen.DetailPayload)
		if !ok {
			return nil
		}
		return m.router.Push(screen.NewDetailScreen(m.services, payload))

	case ui.RouteWatchlist:
		return m.router.Push(screen.NewWatchlistScreen(m.services))

	case ui.RouteLogs:
		return m.router.Push(screen.NewLogsScreen(m.services))

	default:
		return nil
	}
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.router.View()
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Startup output stays on the terminal; once the TUI takes over, logs go
	// to a file and an in-memory ring instead of stdout.
	startupLogger, err := logger.CreatePrettyLogger(cfg.DebugLogging)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	startupLogger.Info("starting dexwatch",
		zap.Strings("chains", cfg.Chains),
		zap.String("api", cfg.APIBaseURL))

	buffer := logger.NewLogBuffer(512)
	appLogger, err := logger.CreateTUILogger(cfg.DebugLogging, cfg.LogFile, buffer)
	if err != nil {
		startupLogger.Fatal("failed to init TUI logger", zap.Error(err))
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	store, err := storage.NewFileStore(cfg.DataDir, appLogger)
	if err != nil {
		startupLogger.Fatal("failed to open data dir", zap.Error(err))
	}
	wl := watchlist.New(store, appLogger)

	client := dexscreener.NewClient(appLogger, dexscreener.ClientOptions{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    time.Duration(cfg.RequestTimeout) * time.Millisecond,
		MaxElapsed: time.Duration(cfg.RetryMaxElapsed) * time.Millisecond,
	})
	defer client.Close()

	svc := market.NewService(client, appLogger, market.ServiceOptions{
		MaxConcurrent:   cfg.MaxConcurrent,
		InterleaveLimit: cfg.MaxInterleaved,
	})

	services := ui.NewAppServices(
		rootCtx,
		svc,
		wl,
		buffer,
		appLogger,
		cfg.Chains,
		time.Duration(cfg.DebounceDelay)*time.Millisecond,
		time.Duration(cfg.RefreshInterval)*time.Millisecond,
	)

	program := tea.NewProgram(
		NewAppModel(services),
		tea.WithAltScreen(),
	)

	go func() {
		if _, err := program.Run(); err != nil {
			appLogger.Error("TUI application failed", zap.Error(err))
		}
		stop()
	}()

	<-rootCtx.Done()

	appLogger.Info("shutting down")
	program.Quit()
}
