package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/render"
)

// cellStyle is the part of a cell that needs a lipgloss style.
type cellStyle struct {
	fg, bg string
	bold   bool
}

func (s cellStyle) plain() bool {
	return s.fg == "" && s.bg == "" && !s.bold
}

func (s cellStyle) style() lipgloss.Style {
	st := lipgloss.NewStyle().Bold(s.bold)
	if s.fg != "" {
		st = st.Foreground(lipgloss.Color(s.fg))
	}
	if s.bg != "" {
		st = st.Background(lipgloss.Color(s.bg))
	}
	return st
}

// StyledCanvas renders a canvas with lipgloss colors, one line per row.
// Adjacent cells with the same colors share one styled run. Rows are as
// wide as the canvas even when labels hold double-width runes.
func StyledCanvas(c *render.Canvas) string {
	var b strings.Builder
	styles := make(map[cellStyle]lipgloss.Style)

	flush := func(st cellStyle, run []rune) {
		if len(run) == 0 {
			return
		}
		if st.plain() {
			b.WriteString(string(run))
			return
		}
		ls, ok := styles[st]
		if !ok {
			ls = st.style()
			styles[st] = ls
		}
		b.WriteString(ls.Render(string(run)))
	}

	for y := 0; y < c.Height; y++ {
		var run []rune
		var cur cellStyle
		for _, cell := range c.Row(y) {
			st := cellStyle{fg: cell.FG, bg: cell.BG, bold: cell.Bold}
			if st != cur {
				flush(cur, run)
				run = run[:0]
				cur = st
			}
			run = append(run, cell.Rune)
		}
		flush(cur, run)
		b.WriteRune('\n')
	}
	return b.String()
}

// Title gradient stops: blue, purple, magenta, pink.
var gradientStops = []string{"#3B82F6", "#8B5CF6", "#D946EF", "#EC4899"}

// gradientColor returns the title color at position x in [0, 1].
func gradientColor(x float64) colorful.Color {
	if x <= 0 {
		c, _ := colorful.Hex(gradientStops[0])
		return c
	}
	if x >= 1 {
		c, _ := colorful.Hex(gradientStops[len(gradientStops)-1])
		return c
	}
	seg := x * float64(len(gradientStops)-1)
	i := int(seg)
	a, _ := colorful.Hex(gradientStops[i])
	b, _ := colorful.Hex(gradientStops[i+1])
	return a.BlendLuv(b, seg-float64(i)).Clamped()
}

// renderGradient renders text with a horizontal truecolor gradient.
func renderGradient(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range runes {
		x := 0.0
		if len(runes) > 1 {
			x = float64(i) / float64(len(runes)-1)
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(x).Hex())).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}
