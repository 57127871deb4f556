package component

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dexwatch/dexwatch/internal/ui/style"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline is a mini graph component for price trends
type Sparkline struct {
	data  []float64
	width int
	color lipgloss.Color
}

// NewSparkline creates a new sparkline component
func NewSparkline(width int) *Sparkline {
	return &Sparkline{
		width: width,
		color: style.DefaultPalette().Primary,
	}
}

// SetData replaces the data points
func (s *Sparkline) SetData(data []float64) *Sparkline {
	s.data = make([]float64, len(data))
	copy(s.data, data)
	s.trim()
	return s
}

// Add appends a data point, keeping only the last width points
func (s *Sparkline) Add(value float64) *Sparkline {
	s.data = append(s.data, value)
	s.trim()
	return s
}

// SetWidth sets the width of the sparkline
func (s *Sparkline) SetWidth(width int) *Sparkline {
	s.width = width
	s.trim()
	return s
}

// SetColor sets the graph color
func (s *Sparkline) SetColor(color lipgloss.Color) *Sparkline {
	s.color = color
	return s
}

func (s *Sparkline) trim() {
	if len(s.data) > s.width {
		s.data = s.data[len(s.data)-s.width:]
	}
}

// View renders the sparkline
func (s *Sparkline) View() string {
	graph := lipgloss.NewStyle().Foreground(s.color).Render(s.blocks())
	trend := lipgloss.NewStyle().
		Foreground(style.ChangeColor(s.ChangePercent())).
		Render(s.Trend())
	return graph + " " + trend
}

func (s *Sparkline) blocks() string {
	if len(s.data) == 0 {
		return strings.Repeat("▁", s.width)
	}

	lo, hi := s.data[0], s.data[0]
	for _, v := range s.data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return strings.Repeat("▄", len(s.data))
	}

	var b strings.Builder
	for _, v := range s.data {
		idx := int((v - lo) / (hi - lo) * float64(len(sparkChars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

// Trend returns an arrow describing overall direction
func (s *Sparkline) Trend() string {
	change := s.ChangePercent()
	switch {
	case math.Abs(change) < 0.1:
		return "→"
	case change > 0:
		return "↗"
	default:
		return "↘"
	}
}

// ChangePercent returns the percentage change from first to last point
func (s *Sparkline) ChangePercent() float64 {
	if len(s.data) < 2 || s.data[0] == 0 {
		return 0
	}
	return (s.data[len(s.data)-1] - s.data[0]) / s.data[0] * 100
}

// Clear removes all data points
func (s *Sparkline) Clear() *Sparkline {
	s.data = nil
	return s
}
