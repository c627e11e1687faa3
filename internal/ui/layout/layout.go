package layout

import (
	"math"

	"github.com/mitchelldurbincs/GraphChase/internal/config"
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
)

// HitSlop widens the clickable area around a vertex relative to its radius
const HitSlop = 1.5

// Point is a position in screen pixels
type Point struct {
	X, Y float64
}

func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) Dot(o Point) float64 { return p.X*o.X + p.Y*o.Y }

// Layout maps board coordinates onto the screen. Vertices sit on a lattice
// Spacing pixels apart, offset by Margin.
type Layout struct {
	Spacing float64
	Radius  float64
	Margin  float64
}

// FromConfig builds a layout from the ui.board settings
func FromConfig(c config.BoardConfig) Layout {
	return Layout{
		Spacing: float64(c.VertexSpacing),
		Radius:  float64(c.VertexRadius),
		Margin:  float64(c.Margin),
	}
}

// ToScreen returns the pixel center of a board coordinate
func (l Layout) ToScreen(c core.Coordinate) Point {
	return l.ToScreenF(float64(c.X), float64(c.Y))
}

// ToScreenF is ToScreen for fractional coordinates, used while animating
func (l Layout) ToScreenF(x, y float64) Point {
	return Point{
		X: l.Margin + x*l.Spacing,
		Y: l.Margin + y*l.Spacing,
	}
}

// ScreenSize returns the pixel size needed to draw a w×h board
func (l Layout) ScreenSize(w, h int) (int, int) {
	width := 2*l.Margin + float64(max(w-1, 0))*l.Spacing
	height := 2*l.Margin + float64(max(h-1, 0))*l.Spacing
	return int(math.Ceil(width)), int(math.Ceil(height))
}

// VertexAt returns the vertex whose hit area contains p. When hit areas
// overlap the closest center wins.
func (l Layout) VertexAt(g *core.Graph, p Point) (core.VertexID, bool) {
	best := core.NoVertex
	bestDist := l.Radius * HitSlop
	for id := 0; id < g.VertexCount(); id++ {
		vid := core.VertexID(id)
		d := p.Sub(l.ToScreen(g.Coord(vid))).Len()
		if d <= bestDist {
			best, bestDist = vid, d
		}
	}
	return best, best != core.NoVertex
}

// ResolveDrag turns a press at start released at end into an edge. The origin
// is the vertex under the press; the destination is the neighbour whose
// direction is closest to the drag direction, within 90 degrees. Drags shorter
// than minDrag pixels resolve to nothing.
func (l Layout) ResolveDrag(g *core.Graph, start, end Point, minDrag float64) (core.Edge, bool) {
	origin, ok := l.VertexAt(g, start)
	if !ok {
		return core.Edge{}, false
	}
	drag := end.Sub(start)
	dragLen := drag.Len()
	if dragLen < minDrag || dragLen == 0 {
		return core.Edge{}, false
	}

	from := l.ToScreen(g.Coord(origin))
	best := core.NoVertex
	bestCos := 0.0
	for _, n := range g.Neighbors(origin) {
		dir := l.ToScreen(g.Coord(n)).Sub(from)
		dirLen := dir.Len()
		if dirLen == 0 {
			continue
		}
		cos := drag.Dot(dir) / (dragLen * dirLen)
		if cos > bestCos {
			best, bestCos = n, cos
		}
	}
	if best == core.NoVertex {
		return core.Edge{}, false
	}
	return core.NewEdge(origin, best), true
}
