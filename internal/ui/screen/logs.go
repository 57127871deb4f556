package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dexwatch/dexwatch/internal/logger"
	"github.com/dexwatch/dexwatch/internal/ui"
	"github.com/dexwatch/dexwatch/internal/ui/component"
	"github.com/dexwatch/dexwatch/internal/ui/router"
	"github.com/dexwatch/dexwatch/internal/ui/style"
)

const logsRefreshInterval = 2 * time.Second

// logsTickMsg drives the periodic re-read of the log ring.
type logsTickMsg struct{}

// LogsScreen renders the in-memory log ring the TUI logger writes to.
type LogsScreen struct {
	services ui.ServiceProvider
	keyMap   ui.KeyMap
	width    int
	height   int

	entries []logger.LogEntry
	helpBar *component.HelpBar

	titleStyle lipgloss.Style
	timeStyle  lipgloss.Style
	debugStyle lipgloss.Style
	infoStyle  lipgloss.Style
	warnStyle  lipgloss.Style
	errorStyle lipgloss.Style
}

// NewLogsScreen creates the logs screen
func NewLogsScreen(services ui.ServiceProvider) *LogsScreen {
	palette := style.DefaultPalette()

	s := &LogsScreen{
		services: services,
		keyMap:   ui.DefaultKeyMap(),
		helpBar:  component.NewHelpBar(),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0),

		timeStyle:  lipgloss.NewStyle().Foreground(palette.TextMuted),
		debugStyle: lipgloss.NewStyle().Foreground(palette.TextMuted),
		infoStyle:  lipgloss.NewStyle().Foreground(palette.Text),
		warnStyle:  lipgloss.NewStyle().Foreground(palette.Warning),
		errorStyle: lipgloss.NewStyle().Foreground(palette.Error).Bold(true),
	}

	s.helpBar.SetBindings(s.keyMap.ContextualHelp(ui.RouteLogs))
	return s
}

// Init starts the refresh loop
func (s *LogsScreen) Init() tea.Cmd {
	s.reload()
	return s.scheduleTick()
}

// Update handles screen updates
func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, s.keyMap.Quit) {
			return s, tea.Quit
		}

	case logsTickMsg:
		s.reload()
		return s, s.scheduleTick()
	}

	return s, nil
}

// View renders the logs screen
func (s *LogsScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	total := s.services.GetLogBuffer().Total()
	content.WriteString(s.titleStyle.Render(fmt.Sprintf("Logs · %d entries", total)))
	content.WriteString("\n")

	if len(s.entries) == 0 {
		content.WriteString(s.timeStyle.Render("No log entries yet."))
	}
	for _, e := range s.entries {
		line := s.timeStyle.Render(e.Timestamp.Format("15:04:05")) + " " +
			s.levelStyle(e.Level).Render(strings.ToUpper(e.Level)) + " " +
			e.Message
		content.WriteString(line)
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(s.helpBar.SetWidth(s.width).View())

	return content.String()
}

// SetSize sets the screen dimensions
func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.reload()
}

func (s *LogsScreen) reload() {
	limit := s.height - 6
	if limit < 10 {
		limit = 10
	}
	s.entries = s.services.GetLogBuffer().Recent(limit)
}

func (s *LogsScreen) levelStyle(level string) lipgloss.Style {
	switch level {
	case "debug":
		return s.debugStyle
	case "warn":
		return s.warnStyle
	case "error", "fatal":
		return s.errorStyle
	default:
		return s.infoStyle
	}
}

func (s *LogsScreen) scheduleTick() tea.Cmd {
	return tea.Tick(logsRefreshInterval, func(time.Time) tea.Msg {
		return logsTickMsg{}
	})
}
