package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding
	Help key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding

	// Screener
	Search    key.Binding
	Trending  key.Binding
	Refresh   key.Binding
	Verified  key.Binding
	Filters   key.Binding
	Watch     key.Binding
	Watchlist key.Binding
	Logs      key.Binding

	// Watchlist
	Remove key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Trending: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trending"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "refresh"),
		),
		Verified: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verified only"),
		),
		Filters: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "quick filters"),
		),
		Watch: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "watch/unwatch"),
		),
		Watchlist: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "watchlist"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logs"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "remove"),
		),
	}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteTokens:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Search, k.Filters, k.Verified, k.Watch, k.Watchlist, k.Refresh, k.Quit}
	case RouteDetail:
		return []key.Binding{k.Watch, k.Refresh, k.Back, k.Quit}
	case RouteWatchlist:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Remove, k.Back, k.Quit}
	case RouteLogs:
		return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
	default:
		return k.ShortHelp()
	}
}
