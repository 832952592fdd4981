package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type styles struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	panel  lipgloss.Style
	graph  lipgloss.Style
	active lipgloss.Style
	idle   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		label: lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value: lipgloss.NewStyle().Foreground(t.Text),
		muted: lipgloss.NewStyle().Foreground(t.Muted),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		graph:  lipgloss.NewStyle().Foreground(t.Rest),
		active: lipgloss.NewStyle().Bold(true).Foreground(t.Stretched),
		idle:   lipgloss.NewStyle().Bold(true).Foreground(t.Rest),
	}
}

// Blend mixes two hex colors in Lab space. t is clamped to [0, 1]; colors
// that fail to parse fall back to a.
func Blend(a, b lipgloss.Color, t float64) lipgloss.Color {
	ca, err := colorful.Hex(string(a))
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(string(b))
	if err != nil {
		return a
	}
	t = math.Max(0, math.Min(1, t))
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

// GradientText colors each rune of text along the gradient from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		style := lipgloss.NewStyle().Foreground(Blend(start, end, t))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// DisplacementBar renders how far the spring is from its target as a bar
// whose color moves from rest to stretched with the displacement.
func DisplacementBar(fraction float64, width int, t Theme) string {
	fraction = math.Abs(fraction)
	filled := int(math.Min(fraction, 1) * float64(width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(Blend(t.Rest, t.Stretched, fraction)).Render(bar)
}

// Separator is a divider line with a diamond in the middle.
func Separator(width int, style lipgloss.Style) string {
	if width < 8 {
		return style.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-2)
	right := strings.Repeat("─", width-mid-1)
	return style.Render(left + " ◆ " + right)
}
