package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dexwatch/dexwatch/internal/screener"
	"github.com/dexwatch/dexwatch/internal/ui"
	"github.com/dexwatch/dexwatch/internal/ui/component"
	"github.com/dexwatch/dexwatch/internal/ui/router"
	"github.com/dexwatch/dexwatch/internal/ui/style"
)

// DetailPayload identifies the token a detail screen shows. Chain and Address
// may be empty when the origin record carried no pair; the screen then renders
// the cached fields without live refresh.
type DetailPayload struct {
	Token   screener.Token
	Chain   string
	Address string
}

// refreshTickMsg drives the periodic price refresh on the detail screen.
type refreshTickMsg struct{}

// DetailScreen shows one token's full fields with a live price sparkline.
type DetailScreen struct {
	services ui.ServiceProvider
	keyMap   ui.KeyMap
	width    int
	height   int

	payload   DetailPayload
	token     screener.Token
	sparkline *component.Sparkline
	helpBar   *component.HelpBar
	status    string

	titleStyle lipgloss.Style
	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
	mutedStyle lipgloss.Style
}

// NewDetailScreen creates a detail screen for one token
func NewDetailScreen(services ui.ServiceProvider, payload DetailPayload) *DetailScreen {
	palette := style.DefaultPalette()

	s := &DetailScreen{
		services:  services,
		keyMap:    ui.DefaultKeyMap(),
		payload:   payload,
		token:     payload.Token,
		sparkline: component.NewSparkline(40),
		helpBar:   component.NewHelpBar(),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0),

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Width(14),

		valueStyle: lipgloss.NewStyle().
			Foreground(palette.Text),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}

	if payload.Token.PriceUsd > 0 {
		s.sparkline.Add(payload.Token.PriceUsd)
	}
	s.helpBar.SetBindings(s.keyMap.ContextualHelp(ui.RouteDetail))
	return s
}

// Init starts the refresh loop when the token has a live pair
func (s *DetailScreen) Init() tea.Cmd {
	if !s.refreshable() {
		return nil
	}
	return tea.Batch(s.refresh(), s.scheduleRefresh())
}

// Update handles screen updates
func (s *DetailScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit

		case key.Matches(msg, s.keyMap.Watch):
			s.toggleWatch()

		case key.Matches(msg, s.keyMap.Refresh):
			if s.refreshable() {
				return s, s.refresh()
			}
		}

	case refreshTickMsg:
		if !s.refreshable() {
			return s, nil
		}
		return s, tea.Batch(s.refresh(), s.scheduleRefresh())

	case ui.PriceHistoryMsg:
		if msg.TokenID != s.token.ID {
			break
		}
		if msg.Token.ID != "" {
			s.token = msg.Token
		}
		for _, p := range msg.Prices {
			s.sparkline.Add(p)
		}
	}

	return s, nil
}

// View renders the detail screen
func (s *DetailScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	title := s.token.Symbol
	if s.token.Name != "" {
		title += " · " + s.token.Name
	}
	content.WriteString(s.titleStyle.Render(title))
	content.WriteString("\n")

	changeStyle := lipgloss.NewStyle().Foreground(style.ChangeColor(s.token.PriceChange24h))

	rows := []struct {
		label string
		value string
	}{
		{"Price", FormatPrice(s.token.PriceUsd)},
		{"24h Change", changeStyle.Render(FormatChange(s.token.PriceChange24h))},
		{"Volume 24h", FormatUSD(s.token.Volume24h)},
		{"Liquidity", FormatUSD(s.token.LiquidityUsd)},
		{"Market Cap", FormatUSD(s.token.MarketCap)},
		{"Verified", fmt.Sprintf("%v", s.token.Verified)},
	}
	if s.payload.Chain != "" {
		rows = append(rows, struct{ label, value string }{"Chain", s.payload.Chain})
	}
	if s.payload.Address != "" {
		rows = append(rows, struct{ label, value string }{"Address", s.payload.Address})
	}

	for _, r := range rows {
		content.WriteString(s.labelStyle.Render(r.label))
		content.WriteString(s.valueStyle.Render(r.value))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	if s.refreshable() {
		content.WriteString(s.labelStyle.Render("Price"))
		content.WriteString(s.sparkline.View())
	} else {
		content.WriteString(s.mutedStyle.Render("No live pair for this token; showing saved fields."))
	}
	content.WriteString("\n")

	if s.status != "" {
		content.WriteString("\n")
		content.WriteString(s.mutedStyle.Render(s.status))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(s.helpBar.SetWidth(s.width).View())

	return content.String()
}

// SetSize sets the screen dimensions
func (s *DetailScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.sparkline.SetWidth(min(60, width-20))
}

func (s *DetailScreen) refreshable() bool {
	return s.payload.Chain != "" && s.payload.Address != ""
}

func (s *DetailScreen) toggleWatch() {
	wl := s.services.GetWatchlist()
	if wl.Contains(s.token.ID) {
		wl.Remove(s.token.ID)
		s.status = "removed from watchlist"
	} else {
		wl.Add(s.token)
		s.status = "added to watchlist"
	}
}

// refresh re-fetches the token's pairs and reduces them to an updated
// aggregate plus one new price point.
func (s *DetailScreen) refresh() tea.Cmd {
	svc := s.services.GetMarket()
	ctx := s.services.GetContext()
	chain, address, id := s.payload.Chain, s.payload.Address, s.token.ID

	return func() tea.Msg {
		pairs := svc.TokenPairs(ctx, chain, address)
		msg := ui.PriceHistoryMsg{TokenID: id}

		tokens := screener.Aggregate(pairs)
		if len(tokens) > 0 {
			tok := tokens[0]
			tok.ID = id
			msg.Token = tok
			if tok.PriceUsd > 0 {
				msg.Prices = []float64{tok.PriceUsd}
			}
		}
		return msg
	}
}

func (s *DetailScreen) scheduleRefresh() tea.Cmd {
	return tea.Tick(s.services.GetRefreshInterval(), func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}
