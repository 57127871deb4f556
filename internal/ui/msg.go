package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dexwatch/dexwatch/internal/market"
	"github.com/dexwatch/dexwatch/internal/screener"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To      Route
	Payload any
}

// SnapshotMsg carries a completed fetch cycle. Screens must drop snapshots
// whose generation is no longer current.
type SnapshotMsg struct {
	Snapshot market.Snapshot
}

// SearchDebouncedMsg fires when the search input has been quiet long enough
// to issue the remote query.
type SearchDebouncedMsg struct {
	Query string
}

// PriceHistoryMsg carries refreshed price points for the detail screen.
type PriceHistoryMsg struct {
	TokenID string
	Prices  []float64
	Token   screener.Token
}

// WatchlistChangedMsg signals that the tracked set was mutated.
type WatchlistChangedMsg struct{}

// ErrorMsg represents error conditions
type ErrorMsg struct {
	Error error
	Title string
}

// StatusMsg represents transient status text shown in the footer
type StatusMsg struct {
	Message string
}

// Event Bus for UI communication
var (
	// Bus carries messages published from outside the tea update loop,
	// such as debounce timer callbacks.
	Bus = make(chan tea.Msg, 1024)
)

// Publish puts a message on the bus, dropping it if the bus is full.
func Publish(msg tea.Msg) {
	select {
	case Bus <- msg:
	default:
	}
}

// PublishError publishes an error message to the UI bus
func PublishError(err error, title string) {
	Publish(ErrorMsg{Error: err, Title: title})
}

// ListenBus returns a tea.Cmd that listens to the event bus
func ListenBus() tea.Cmd {
	return func() tea.Msg {
		return <-Bus
	}
}

// Route represents different screens in the application
type Route int

const (
	RouteTokens Route = iota
	RouteDetail
	RouteWatchlist
	RouteLogs
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteTokens:
		return "tokens"
	case RouteDetail:
		return "detail"
	case RouteWatchlist:
		return "watchlist"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
