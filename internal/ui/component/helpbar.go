package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/dexwatch/dexwatch/internal/ui/style"
)

// HelpBar renders key bindings in a single footer line
type HelpBar struct {
	bindings []key.Binding
	width    int

	keyStyle  lipgloss.Style
	descStyle lipgloss.Style
}

// NewHelpBar creates a new help bar component
func NewHelpBar() *HelpBar {
	palette := style.DefaultPalette()
	return &HelpBar{
		keyStyle:  lipgloss.NewStyle().Foreground(palette.Primary).Bold(true),
		descStyle: lipgloss.NewStyle().Foreground(palette.TextMuted),
	}
}

// SetBindings replaces the displayed bindings
func (h *HelpBar) SetBindings(bindings []key.Binding) *HelpBar {
	h.bindings = bindings
	return h
}

// SetWidth sets the rendered width
func (h *HelpBar) SetWidth(width int) *HelpBar {
	h.width = width
	return h
}

// View renders the help bar
func (h *HelpBar) View() string {
	var parts []string
	for _, b := range h.bindings {
		help := b.Help()
		if help.Key == "" {
			continue
		}
		parts = append(parts, h.keyStyle.Render(help.Key)+" "+h.descStyle.Render(help.Desc))
	}
	line := strings.Join(parts, "  ")
	if h.width > 0 {
		return lipgloss.NewStyle().Width(h.width).Render(line)
	}
	return line
}
