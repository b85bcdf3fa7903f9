// Package format holds the pure rendering helpers shared by the CLI tables
// and the dashboard panels. Every function tolerates missing input and
// returns a placeholder instead of panicking.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/notidash/internal/models"
)

const (
	// Placeholder stands in for absent timestamps and values
	Placeholder = "-"

	dateTimeLayout = "2006-01-02 15:04"
	timeLayout     = "15:04"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	categoryStyles = map[models.Category]lipgloss.Style{
		models.CategoryWeather:  lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.CategoryFinance:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.CategoryCalendar: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		models.CategoryMemo:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
)

// DateTime renders a timestamp as "2006-01-02 15:04" in local time.
// Nil or zero timestamps render as the placeholder.
func DateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	return t.Local().Format(dateTimeLayout)
}

// TimeOnly renders just the clock portion of a timestamp
func TimeOnly(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	return t.Local().Format(timeLayout)
}

// Truncate shortens text to maxLength runes plus an ellipsis marker.
// Empty input returns the empty string unchanged.
func Truncate(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}

// StatusBadge maps a run status to a colored tag. Unknown statuses render
// with a neutral style rather than failing.
func StatusBadge(status models.RunStatus) string {
	switch status {
	case models.RunStatusSuccess:
		return successStyle.Render(string(status))
	case models.RunStatusFail:
		return failStyle.Render(string(status))
	case models.RunStatusSkip:
		return skipStyle.Render(string(status))
	case "":
		return Placeholder
	}
	return neutralStyle.Render(string(status))
}

// CategoryBadge maps a module category to a colored tag, neutral on unknowns
func CategoryBadge(category models.Category) string {
	if style, ok := categoryStyles[category]; ok {
		return style.Render(string(category))
	}
	if category == "" {
		return Placeholder
	}
	return neutralStyle.Render(string(category))
}

// ActiveBadge renders a module's on/off state
func ActiveBadge(active bool) string {
	if active {
		return successStyle.Render("Active")
	}
	return neutralStyle.Render("Inactive")
}

// ConnectedBadge renders an account-link state
func ConnectedBadge(connected bool) string {
	if connected {
		return successStyle.Render("Connected")
	}
	return neutralStyle.Render("Not Connected")
}

// Money renders a price in the market's conventional notation:
// US as $-prefixed two decimals, KR as a grouped integer with a won suffix.
func Money(market models.Market, value float64) string {
	switch market {
	case models.MarketKR:
		return groupDigits(int64(math.Round(value))) + "원"
	default:
		return fmt.Sprintf("$%.2f", value)
	}
}

// Percent renders a signed percent change ("+1.25%", "-0.40%")
func Percent(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}

// ChangeBadge colors a percent change by its sign
func ChangeBadge(value float64) string {
	s := Percent(value)
	switch {
	case value > 0:
		return successStyle.Render(s)
	case value < 0:
		return failStyle.Render(s)
	}
	return neutralStyle.Render(s)
}

// RangeGauge renders where price sits between low and high as a
// fixed-width progress bar. Degenerate ranges render an empty gauge.
func RangeGauge(low, high, price float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if high <= low {
		return "[" + strings.Repeat("-", width) + "]"
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	filled := int(pos*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func groupDigits(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}
