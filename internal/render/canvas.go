// Package render rasterizes a scene into a grid of terminal cells.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// CellKind records what was drawn into a cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellStar
	CellRing
	CellBody
	CellLabel
)

// Cell is one character cell of the canvas. A double-width rune occupies
// two cells; the right one holds Rune 0.
type Cell struct {
	Rune rune
	FG   string // Hex color, empty for default
	BG   string // Hex color, empty for default
	Bold bool
	Kind CellKind
}

var blank = Cell{Rune: ' '}

// Canvas is a fixed-size grid of cells.
type Canvas struct {
	Width  int
	Height int
	Cells  [][]Cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = blank
		}
	}
	return &Canvas{Width: width, Height: height, Cells: cells}
}

// InBounds reports whether (x, y) is on the canvas.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// Set writes a cell. It returns false when (x, y) is off the canvas.
func (c *Canvas) Set(x, y int, cell Cell) bool {
	if !c.InBounds(x, y) {
		return false
	}
	c.Cells[y][x] = cell
	return true
}

// SetIfEmpty writes a cell only over blank cells or cells of a lower kind.
func (c *Canvas) SetIfEmpty(x, y int, cell Cell) bool {
	if !c.InBounds(x, y) {
		return false
	}
	if c.Cells[y][x].Kind >= cell.Kind {
		return false
	}
	c.Cells[y][x] = cell
	return true
}

// Row returns row y as a terminal shows it, exactly Width columns wide.
// A wide rune swallows its tail cell. A wide rune whose tail was
// overwritten or clipped, and a tail whose rune is gone, become blanks.
func (c *Canvas) Row(y int) []Cell {
	if y < 0 || y >= c.Height {
		return nil
	}
	row := c.Cells[y]
	out := make([]Cell, 0, len(row))
	for x := 0; x < len(row); x++ {
		cell := row[x]
		switch w := runewidth.RuneWidth(cell.Rune); {
		case cell.Rune == 0 || w == 0:
			cell.Rune = ' '
		case w == 2:
			if x+1 < len(row) && row[x+1].Rune == 0 {
				out = append(out, cell)
				x++
				continue
			}
			cell.Rune = ' '
		}
		out = append(out, cell)
	}
	return out
}

// String returns the canvas as plain text, one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.Height; y++ {
		for _, cell := range c.Row(y) {
			b.WriteRune(cell.Rune)
		}
		if y < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
