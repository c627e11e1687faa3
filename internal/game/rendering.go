package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
)

// ANSI color codes for terminal rendering
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorGray  = "\033[90m"
)

// Board symbols
const (
	PlayerSymbol = 'P'
	EnemySymbol  = 'E'
	VertexSymbol = 'o'
)

// Board returns a plain text drawing of the board. Vertices sit on even
// columns and rows; edges between lattice neighbours are drawn between them
// as '-', '|', '\', '/' or 'X' where two diagonals cross. Edges joining
// vertices that are not lattice neighbours are counted in the footer instead.
func (e *Engine) Board() string {
	return renderBoard(e.gs, false)
}

// ColorBoard is Board with ANSI colors for units
func (e *Engine) ColorBoard() string {
	return renderBoard(e.gs, true)
}

func renderBoard(gs *GameState, color bool) string {
	g := gs.Board
	width, height := g.W, g.H
	cols, rows := 2*width-1, 2*height-1
	if cols < 1 || rows < 1 {
		return fmt.Sprintf("Turn %d | %s | empty board\n", gs.Turn, gs.Outcome)
	}

	canvas := make([][]rune, rows)
	for y := range canvas {
		canvas[y] = []rune(strings.Repeat(" ", cols))
	}

	inBounds := func(c core.Coordinate) bool { return c.IsValid(width, height) }

	hidden := 0
	for _, edge := range g.Edges() {
		a, b := g.Coord(edge.From), g.Coord(edge.To)
		if !inBounds(a) || !inBounds(b) {
			hidden++
			continue
		}
		if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
			a, b = b, a
		}
		dx, dy := b.X-a.X, b.Y-a.Y
		col, row := a.X+b.X, a.Y+b.Y
		switch {
		case dx == 1 && dy == 0:
			canvas[row][col] = '-'
		case dx == 0 && dy == 1:
			canvas[row][col] = '|'
		case dx == 1 && (dy == 1 || dy == -1):
			mark := '\\'
			if dy == -1 {
				mark = '/'
			}
			if existing := canvas[row][col]; existing != ' ' && existing != mark {
				mark = 'X'
			}
			canvas[row][col] = mark
		default:
			hidden++
		}
	}

	for id := 0; id < g.VertexCount(); id++ {
		v := g.Vertex(core.VertexID(id))
		if !inBounds(v.Coord) {
			continue
		}
		symbol := VertexSymbol
		if u := v.Occupant(); u != nil {
			symbol = EnemySymbol
			if u.IsPlayer() {
				symbol = PlayerSymbol
			}
		}
		canvas[2*v.Coord.Y][2*v.Coord.X] = symbol
	}

	var sb strings.Builder
	sb.Grow((cols + 8) * (rows + 3))

	// Header row
	sb.WriteString("   ")
	for x := 0; x < width; x++ {
		if x > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", x%10)
	}
	sb.WriteByte('\n')

	for row, line := range canvas {
		if row%2 == 0 {
			fmt.Fprintf(&sb, "%2d ", row/2)
		} else {
			sb.WriteString("   ")
		}
		text := strings.TrimRight(string(line), " ")
		if color {
			text = colorize(text)
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "Turn %d | %s | %d enemies left", gs.Turn, gs.Outcome, len(g.Enemies()))
	if hidden > 0 {
		fmt.Fprintf(&sb, " | %d edges not drawn", hidden)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func colorize(line string) string {
	var sb strings.Builder
	for _, r := range line {
		switch r {
		case PlayerSymbol:
			sb.WriteString(ColorBlue + string(r) + ColorReset)
		case EnemySymbol:
			sb.WriteString(ColorRed + string(r) + ColorReset)
		case ' ', VertexSymbol:
			sb.WriteRune(r)
		default:
			sb.WriteString(ColorGray + string(r) + ColorReset)
		}
	}
	return sb.String()
}
