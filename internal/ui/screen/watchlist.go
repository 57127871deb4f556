package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dexwatch/dexwatch/internal/ui"
	"github.com/dexwatch/dexwatch/internal/ui/component"
	"github.com/dexwatch/dexwatch/internal/ui/router"
	"github.com/dexwatch/dexwatch/internal/ui/style"
	"github.com/dexwatch/dexwatch/internal/watchlist"
)

// WatchlistScreen lists the persisted tracked tokens.
type WatchlistScreen struct {
	services ui.ServiceProvider
	keyMap   ui.KeyMap
	width    int
	height   int

	entries []watchlist.Entry
	table   *component.Table
	helpBar *component.HelpBar

	titleStyle lipgloss.Style
	mutedStyle lipgloss.Style
}

// NewWatchlistScreen creates the watchlist screen
func NewWatchlistScreen(services ui.ServiceProvider) *WatchlistScreen {
	palette := style.DefaultPalette()

	s := &WatchlistScreen{
		services: services,
		keyMap:   ui.DefaultKeyMap(),
		helpBar:  component.NewHelpBar(),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}

	s.table = component.NewTable().
		AddColumn("Symbol", 10, lipgloss.Left).
		AddColumn("Name", 20, lipgloss.Left).
		AddColumn("Price", 14, lipgloss.Right).
		AddColumn("24h %", 9, lipgloss.Right).
		AddColumn("Added", 12, lipgloss.Left)

	s.helpBar.SetBindings(s.keyMap.ContextualHelp(ui.RouteWatchlist))
	s.reload()
	return s
}

// Init initializes the watchlist screen
func (s *WatchlistScreen) Init() tea.Cmd {
	s.reload()
	return nil
}

// Update handles screen updates
func (s *WatchlistScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit

		case key.Matches(msg, s.keyMap.Up):
			s.table.MoveUp()

		case key.Matches(msg, s.keyMap.Down):
			s.table.MoveDown()

		case key.Matches(msg, s.keyMap.Remove):
			if entry, ok := s.selectedEntry(); ok {
				s.services.GetWatchlist().Remove(entry.Token.ID)
				s.reload()
				return s, func() tea.Msg { return ui.WatchlistChangedMsg{} }
			}

		case key.Matches(msg, s.keyMap.Enter):
			if entry, ok := s.selectedEntry(); ok {
				payload := DetailPayload{Token: entry.Token}
				if entry.BaseToken != nil {
					payload.Address = entry.BaseToken.Address
				}
				return s, func() tea.Msg {
					return ui.RouterMsg{To: ui.RouteDetail, Payload: payload}
				}
			}
		}

	case ui.WatchlistChangedMsg:
		s.reload()
	}

	return s, nil
}

// View renders the watchlist
func (s *WatchlistScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	content.WriteString(s.titleStyle.Render(fmt.Sprintf("Watchlist · %d tokens", len(s.entries))))
	content.WriteString("\n")

	if len(s.entries) == 0 {
		content.WriteString(s.mutedStyle.Render("Nothing watched yet. Press w on a token to track it."))
	} else {
		content.WriteString(s.table.View())
	}

	content.WriteString("\n\n")
	content.WriteString(s.helpBar.SetWidth(s.width).View())

	return content.String()
}

// SetSize sets the screen dimensions
func (s *WatchlistScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetSize(width-4, height-8)
}

func (s *WatchlistScreen) selectedEntry() (watchlist.Entry, bool) {
	idx := s.table.SelectedRow()
	if idx < 0 || idx >= len(s.entries) {
		return watchlist.Entry{}, false
	}
	return s.entries[idx], true
}

func (s *WatchlistScreen) reload() {
	s.entries = s.services.GetWatchlist().List()

	rows := make([]component.Row, 0, len(s.entries))
	for _, e := range s.entries {
		// Persisted display fallbacks: symbol and name survive even when the
		// token can no longer be fetched.
		name := e.Token.Name
		if name == "" && e.BaseToken != nil {
			name = e.BaseToken.Name
		}
		changeStyle := lipgloss.NewStyle().Foreground(style.ChangeColor(e.Token.PriceChange24h))
		rows = append(rows, component.Row{
			Cells: []string{
				e.Token.Symbol,
				name,
				FormatPrice(e.Token.PriceUsd),
				FormatChange(e.Token.PriceChange24h),
				e.AddedAt.Format("Jan 02 15:04"),
			},
			Style: &changeStyle,
		})
	}
	s.table.SetRows(rows)
}
