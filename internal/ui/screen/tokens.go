package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dexwatch/dexwatch/internal/dexscreener"
	"github.com/dexwatch/dexwatch/internal/market"
	"github.com/dexwatch/dexwatch/internal/screener"
	"github.com/dexwatch/dexwatch/internal/ui"
	"github.com/dexwatch/dexwatch/internal/ui/component"
	"github.com/dexwatch/dexwatch/internal/ui/router"
	"github.com/dexwatch/dexwatch/internal/ui/style"
)

// TokensScreen is the main screener view: trending or search results run
// through the filter engine and rendered as a sortable table.
type TokensScreen struct {
	services ui.ServiceProvider
	keyMap   ui.KeyMap
	width    int
	height   int

	searchInput textinput.Model
	loadSpinner spinner.Model
	table       *component.Table
	helpBar     *component.HelpBar
	debouncer   *market.Debouncer

	searching bool
	query     string
	loading   bool
	snapshot  market.Snapshot
	visible   []screener.Token
	quick     map[screener.QuickFilter]bool
	advanced  screener.AdvancedFilters
	status    string

	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
	filterOn    lipgloss.Style
	filterOff   lipgloss.Style
	errorStyle  lipgloss.Style
	mutedStyle  lipgloss.Style
}

// NewTokensScreen creates the main screener screen
func NewTokensScreen(services ui.ServiceProvider) *TokensScreen {
	palette := style.DefaultPalette()

	input := textinput.New()
	input.Placeholder = "search tokens or pairs"
	input.CharLimit = 80
	input.Width = 40

	load := spinner.New()
	load.Spinner = spinner.Dot
	load.Style = lipgloss.NewStyle().Foreground(palette.Primary)

	s := &TokensScreen{
		services:    services,
		keyMap:      ui.DefaultKeyMap(),
		searchInput: input,
		loadSpinner: load,
		helpBar:     component.NewHelpBar(),
		debouncer:   market.NewDebouncer(services.GetDebounceDelay()),
		quick:       make(map[screener.QuickFilter]bool),
		advanced:    screener.DefaultAdvancedFilters(),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0),

		statusStyle: lipgloss.NewStyle().
			Foreground(palette.TextSecondary),

		filterOn: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1),

		filterOff: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 1),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}

	s.table = component.NewTable().
		AddColumn("Symbol", 10, lipgloss.Left).
		AddColumn("Name", 18, lipgloss.Left).
		AddColumn("Price", 14, lipgloss.Right).
		AddColumn("24h %", 9, lipgloss.Right).
		AddColumn("Volume 24h", 12, lipgloss.Right).
		AddColumn("Liquidity", 12, lipgloss.Right).
		AddColumn("MCap", 10, lipgloss.Right).
		AddColumn("", 2, lipgloss.Center)

	s.helpBar.SetBindings(s.keyMap.ContextualHelp(ui.RouteTokens))

	return s
}

// Init starts the initial trending fetch
func (s *TokensScreen) Init() tea.Cmd {
	return tea.Batch(s.fetchTrending(), s.loadSpinner.Tick)
}

// Update handles screen updates
func (s *TokensScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.searching {
			return s.updateSearching(msg)
		}
		return s.updateBrowsing(msg)

	case spinner.TickMsg:
		if s.loading {
			var cmd tea.Cmd
			s.loadSpinner, cmd = s.loadSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case ui.SearchDebouncedMsg:
		s.query = msg.Query
		if msg.Query == "" {
			cmds = append(cmds, s.fetchTrending())
		} else {
			cmds = append(cmds, s.fetchSearch(msg.Query))
		}
		cmds = append(cmds, s.loadSpinner.Tick)

	case ui.SnapshotMsg:
		// Stale generations lose the race and are dropped unrendered.
		if !s.services.GetMarket().IsCurrent(msg.Snapshot.Generation) {
			break
		}
		s.loading = false
		s.snapshot = msg.Snapshot
		s.applyFilters()

	case ui.WatchlistChangedMsg:
		s.applyFilters()
	}

	return s, tea.Batch(cmds...)
}

func (s *TokensScreen) updateSearching(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.searching = false
		s.searchInput.Blur()
		return s, nil

	case "enter":
		// Submit immediately, skipping the remaining quiet period.
		s.searching = false
		s.searchInput.Blur()
		s.debouncer.Stop()
		query := strings.TrimSpace(s.searchInput.Value())
		return s, func() tea.Msg {
			return ui.SearchDebouncedMsg{Query: query}
		}
	}

	var cmd tea.Cmd
	s.searchInput, cmd = s.searchInput.Update(msg)

	query := strings.TrimSpace(s.searchInput.Value())
	s.debouncer.Trigger(func() {
		ui.Publish(ui.SearchDebouncedMsg{Query: query})
	})
	return s, cmd
}

func (s *TokensScreen) updateBrowsing(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keyMap.Quit):
		return s, tea.Quit

	case key.Matches(msg, s.keyMap.Search):
		s.searching = true
		s.searchInput.Focus()
		return s, textinput.Blink

	case key.Matches(msg, s.keyMap.Trending):
		s.searchInput.SetValue("")
		s.query = ""
		return s, tea.Batch(s.fetchTrending(), s.loadSpinner.Tick)

	case key.Matches(msg, s.keyMap.Refresh):
		if s.query != "" {
			return s, tea.Batch(s.fetchSearch(s.query), s.loadSpinner.Tick)
		}
		return s, tea.Batch(s.fetchTrending(), s.loadSpinner.Tick)

	case key.Matches(msg, s.keyMap.Up):
		s.table.MoveUp()

	case key.Matches(msg, s.keyMap.Down):
		s.table.MoveDown()

	case key.Matches(msg, s.keyMap.Verified):
		s.advanced.OnlyVerified = !s.advanced.OnlyVerified
		s.applyFilters()

	case key.Matches(msg, s.keyMap.Filters):
		if idx := int(msg.String()[0] - '1'); idx >= 0 && idx < len(screener.QuickFilters) {
			name := screener.QuickFilters[idx]
			s.quick[name] = !s.quick[name]
			s.applyFilters()
		}

	case key.Matches(msg, s.keyMap.Watch):
		return s, s.toggleWatch()

	case key.Matches(msg, s.keyMap.Watchlist):
		return s, func() tea.Msg {
			return ui.RouterMsg{To: ui.RouteWatchlist}
		}

	case key.Matches(msg, s.keyMap.Logs):
		return s, func() tea.Msg {
			return ui.RouterMsg{To: ui.RouteLogs}
		}

	case key.Matches(msg, s.keyMap.Enter):
		return s, s.openDetail()
	}

	return s, nil
}

// View renders the screener
func (s *TokensScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	title := "DEX Screener"
	if s.query != "" {
		title += fmt.Sprintf(" · %q", s.query)
	} else {
		title += " · Trending"
	}
	content.WriteString(s.titleStyle.Render(title))
	content.WriteString("\n")

	if s.searching {
		content.WriteString(s.searchInput.View())
	} else {
		content.WriteString(s.renderFilterBar())
	}
	content.WriteString("\n\n")

	switch {
	case s.loading:
		content.WriteString(s.loadSpinner.View() + " fetching market data")

	case s.snapshot.State == market.StateFailed:
		content.WriteString(s.errorStyle.Render("Fetch failed."))
		content.WriteString(s.mutedStyle.Render(" Press r to retry."))

	case len(s.visible) == 0:
		content.WriteString(s.mutedStyle.Render("No tokens match."))

	default:
		content.WriteString(s.table.View())
	}

	content.WriteString("\n\n")
	content.WriteString(s.statusStyle.Render(s.renderStatus()))
	content.WriteString("\n")
	content.WriteString(s.helpBar.SetWidth(s.width).View())

	return content.String()
}

// SetSize sets the screen dimensions
func (s *TokensScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetSize(width-4, height-12)
	s.searchInput.Width = min(60, width-10)
}

func (s *TokensScreen) renderFilterBar() string {
	var parts []string
	for i, name := range screener.QuickFilters {
		label := fmt.Sprintf("%d %s", i+1, name)
		if s.quick[name] {
			parts = append(parts, s.filterOn.Render(label))
		} else {
			parts = append(parts, s.filterOff.Render(label))
		}
	}
	verified := "v Verified"
	if s.advanced.OnlyVerified {
		parts = append(parts, s.filterOn.Render(verified))
	} else {
		parts = append(parts, s.filterOff.Render(verified))
	}
	return strings.Join(parts, " ")
}

func (s *TokensScreen) renderStatus() string {
	parts := []string{
		fmt.Sprintf("%d/%d tokens", len(s.visible), len(s.snapshot.Tokens)),
		fmt.Sprintf("watching %d", s.services.GetWatchlist().Len()),
	}
	if s.status != "" {
		parts = append(parts, s.status)
	}
	return strings.Join(parts, " · ")
}

func (s *TokensScreen) applyFilters() {
	s.visible = screener.Filter(s.snapshot.Tokens, s.quick, s.advanced)

	wl := s.services.GetWatchlist()
	rows := make([]component.Row, 0, len(s.visible))
	for _, t := range s.visible {
		mark := ""
		if wl.Contains(t.ID) {
			mark = "★"
		}
		changeStyle := lipgloss.NewStyle().Foreground(style.ChangeColor(t.PriceChange24h))
		rows = append(rows, component.Row{
			Cells: []string{
				t.Symbol,
				t.Name,
				FormatPrice(t.PriceUsd),
				FormatChange(t.PriceChange24h),
				FormatUSD(t.Volume24h),
				FormatUSD(t.LiquidityUsd),
				FormatUSD(t.MarketCap),
				mark,
			},
			Style: &changeStyle,
		})
	}
	s.table.SetRows(rows)
}

func (s *TokensScreen) selectedToken() (screener.Token, bool) {
	idx := s.table.SelectedRow()
	if idx < 0 || idx >= len(s.visible) {
		return screener.Token{}, false
	}
	return s.visible[idx], true
}

func (s *TokensScreen) toggleWatch() tea.Cmd {
	tok, ok := s.selectedToken()
	if !ok {
		return nil
	}

	wl := s.services.GetWatchlist()
	if wl.Contains(tok.ID) {
		wl.Remove(tok.ID)
		s.status = tok.Symbol + " unwatched"
	} else {
		if pair, found := s.pairFor(tok.ID); found {
			wl.Add(pair)
		} else {
			wl.Add(tok)
		}
		s.status = tok.Symbol + " watched"
	}
	s.applyFilters()
	return nil
}

func (s *TokensScreen) openDetail() tea.Cmd {
	tok, ok := s.selectedToken()
	if !ok {
		return nil
	}

	payload := DetailPayload{Token: tok}
	if pair, found := s.pairFor(tok.ID); found {
		payload.Chain = pair.ChainID
		payload.Address = pair.BaseToken.Address
	}
	return func() tea.Msg {
		return ui.RouterMsg{To: ui.RouteDetail, Payload: payload}
	}
}

// pairFor finds the snapshot pair backing an aggregated token. The ID may be
// a pair address or a base-token address in its original casing, so address
// comparison is canonical on both sides.
func (s *TokensScreen) pairFor(tokenID string) (dexscreener.Pair, bool) {
	canonical := screener.CanonicalAddress(tokenID)
	for _, p := range s.snapshot.Pairs {
		if p.PairAddress == tokenID || screener.CanonicalAddress(p.BaseToken.Address) == canonical {
			return p, true
		}
	}
	return dexscreener.Pair{}, false
}

func (s *TokensScreen) fetchTrending() tea.Cmd {
	s.loading = true
	svc := s.services.GetMarket()
	ctx := s.services.GetContext()
	chains := s.services.GetChains()
	gen := svc.NextGeneration()
	return func() tea.Msg {
		return ui.SnapshotMsg{Snapshot: svc.Trending(ctx, gen, chains)}
	}
}

func (s *TokensScreen) fetchSearch(query string) tea.Cmd {
	s.loading = true
	svc := s.services.GetMarket()
	ctx := s.services.GetContext()
	gen := svc.NextGeneration()
	return func() tea.Msg {
		return ui.SnapshotMsg{Snapshot: svc.Search(ctx, gen, query)}
	}
}
