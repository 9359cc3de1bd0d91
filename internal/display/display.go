// Package display renders classifications and key symbols for the terminal.
package display

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Span is a piece of text with an optional color name.
type Span struct {
	Text  string
	Color string
	Bold  bool
}

// Line is a sequence of spans rendered side by side.
type Line []Span

// Plain returns the text without styling.
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Render returns the text styled with lipgloss.
func (l Line) Render() string {
	var b strings.Builder
	for _, s := range l {
		if s.Color == "" && !s.Bold {
			b.WriteString(s.Text)
			continue
		}
		style := lipgloss.NewStyle().Bold(s.Bold)
		if s.Color != "" {
			style = style.Foreground(Color(s.Color))
		}
		b.WriteString(style.Render(s.Text))
	}
	return b.String()
}

// Width returns the display width of the plain text.
func (l Line) Width() int {
	return runewidth.StringWidth(l.Plain())
}

// IsEmpty reports whether the line has no visible text.
func (l Line) IsEmpty() bool {
	return l.Plain() == ""
}

// Equal reports whether two lines have the same spans.
func (l Line) Equal(other Line) bool {
	return slices.Equal(l, other)
}

// namedColors maps the color names used in layouts and registries to ANSI 256
// color codes. Anything else is passed to lipgloss unchanged (hex or code).
var namedColors = map[string]string{
	"black":         "0",
	"red":           "1",
	"green":         "2",
	"yellow":        "3",
	"blue":          "4",
	"magenta":       "5",
	"cyan":          "6",
	"white":         "7",
	"gray":          "8",
	"grey":          "8",
	"bright_black":  "8",
	"blue1":         "21",
	"dodger_blue2":  "27",
	"spring_green3": "41",
	"royal_blue1":   "63",
	"chartreuse3":   "76",
	"sky_blue1":     "117",
	"purple":        "129",
	"deep_pink3":    "161",
	"dark_orange3":  "166",
	"orange3":       "172",
	"deep_pink2":    "197",
	"dark_orange":   "208",
	"light_pink1":   "217",
	"yellow1":       "226",
}

// Color resolves a color name to a lipgloss color.
func Color(name string) lipgloss.Color {
	if code, ok := namedColors[strings.ToLower(name)]; ok {
		return lipgloss.Color(code)
	}
	return lipgloss.Color(name)
}

// Center pads text with spaces to width display cells. Text wider than width
// is returned unchanged.
func Center(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	pad := width - w
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}
