package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// RenderThemeGradient renders text with the current theme's primary gradient
func RenderThemeGradient(text string, bold bool) string {
	theme := CurrentTheme()
	if bold {
		return ApplyBoldGradient(text, theme.Primary, theme.Accent)
	}
	return ApplyGradient(text, theme.Primary, theme.Accent)
}

// ApplyGradient renders each grapheme of input in a color blended from
// color1 to color2.
func ApplyGradient(input string, color1, color2 color.Color) string {
	return applyGradient(lipgloss.NewStyle(), input, color1, color2)
}

func ApplyBoldGradient(input string, color1, color2 color.Color) string {
	return applyGradient(lipgloss.NewStyle().Bold(true), input, color1, color2)
}

func applyGradient(base lipgloss.Style, input string, color1, color2 color.Color) string {
	if input == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(input)
	for gr.Next() {
		clusters = append(clusters, string(gr.Runes()))
	}

	if len(clusters) == 1 {
		return base.Foreground(color1).Render(input)
	}

	ramp := blendColors(len(clusters), color1, color2)
	var b strings.Builder
	for i, c := range clusters {
		b.WriteString(base.Foreground(ramp[i]).Render(c))
	}
	return b.String()
}

// RenderGradientBar draws a progress bar of width cells, filled is in [0,1].
func RenderGradientBar(width int, filled float64) string {
	if width <= 0 {
		return ""
	}
	if filled < 0 {
		filled = 0
	}
	if filled > 1 {
		filled = 1
	}

	theme := CurrentTheme()
	filledWidth := int(float64(width) * filled)
	empty := lipgloss.NewStyle().Foreground(theme.FgSubtle).Render(strings.Repeat("░", width-filledWidth))
	if filledWidth == 0 {
		return empty
	}

	var bar strings.Builder
	colors := blendColors(filledWidth, theme.Primary, theme.Success)
	for i := 0; i < filledWidth; i++ {
		bar.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render("█"))
	}
	bar.WriteString(empty)
	return bar.String()
}

func blendColors(size int, from, to color.Color) []color.Color {
	if size <= 0 {
		return nil
	}
	if size == 1 {
		return []color.Color{from}
	}

	a, _ := colorful.MakeColor(from)
	b, _ := colorful.MakeColor(to)

	out := make([]color.Color, size)
	for i := range out {
		t := float64(i) / float64(size-1)
		out[i] = ParseHex(a.BlendHcl(b, t).Clamped().Hex())
	}
	return out
}
