package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BudgetStyle returns the style for a remaining-hours figure: green while
// comfortably inside the budget, yellow under 20% left, red when overrun.
func BudgetStyle(remaining, available float64) lipgloss.Style {
	switch {
	case remaining < 0:
		return StyleRed
	case available > 0 && remaining/available < 0.2:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// ServiceStyle builds a block style from a service's hex color. Invalid or
// empty colors fall back to the dim block. Text color is picked for contrast
// against the background.
func ServiceStyle(hex string) lipgloss.Style {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return lipgloss.NewStyle().Background(ColorDim).Foreground(lipgloss.Color("#1d2021"))
	}
	fg := "#1d2021"
	if _, _, l := c.Hsl(); l < 0.5 {
		fg = "#ebdbb2"
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Foreground(lipgloss.Color(fg))
}

// DimServiceStyle is ServiceStyle with the background blended toward the
// terminal background, used for planned (future) blocks.
func DimServiceStyle(hex string) lipgloss.Style {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return lipgloss.NewStyle().Background(lipgloss.Color("#3c3836")).Foreground(ColorDim)
	}
	bg, _ := colorful.Hex("#282828")
	blended := c.BlendLab(bg, 0.55).Clamped()
	fg := "#1d2021"
	if _, _, l := blended.Hsl(); l < 0.5 {
		fg = "#ebdbb2"
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(blended.Hex())).Foreground(lipgloss.Color(fg))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
