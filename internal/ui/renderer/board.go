package renderer

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/GraphChase/internal/common"
	"github.com/mitchelldurbincs/GraphChase/internal/game"
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/anim"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/layout"
)

const (
	edgeWidth     = 3
	unitScale     = 0.75
	skipRingWidth = 2
	labelBaseline = 4
)

// Positioner overrides where a unit is drawn while it is animating.
// Coordinates are fractional lattice positions.
type Positioner interface {
	Position(unit core.UnitID) (x, y float64, ok bool)
}

// Scene is everything the board renderer needs for one frame
type Scene struct {
	Graph  *core.Graph
	Units  []game.UnitView
	Ghosts []anim.Ghost
	// Motion may be nil when nothing animates
	Motion Positioner
}

type BoardRenderer struct {
	layout      layout.Layout
	palette     common.Palette
	defaultFont font.Face
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(l layout.Layout, p common.Palette, f font.Face) *BoardRenderer {
	return &BoardRenderer{layout: l, palette: p, defaultFont: f}
}

// SetPalette swaps colors, used when the config file changes
func (br *BoardRenderer) SetPalette(p common.Palette) {
	br.palette = p
}

// Draw renders edges, then vertices, then units on top
func (br *BoardRenderer) Draw(screen *ebiten.Image, scene Scene) {
	if scene.Graph == nil {
		return
	}
	g := scene.Graph

	for _, e := range g.Edges() {
		a := br.layout.ToScreen(g.Coord(e.From))
		b := br.layout.ToScreen(g.Coord(e.To))
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), edgeWidth, br.palette.Edge, true)
	}

	r := float32(br.layout.Radius)
	for id := 0; id < g.VertexCount(); id++ {
		p := br.layout.ToScreen(g.Coord(core.VertexID(id)))
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), r, br.palette.Vertex, true)
	}

	for _, gh := range scene.Ghosts {
		p := br.layout.ToScreen(gh.At)
		br.drawUnit(screen, p, gh.Role, false, common.Fade(br.roleColor(gh.Role), gh.Alpha))
	}

	for _, u := range scene.Units {
		p := br.layout.ToScreen(u.Coord)
		if scene.Motion != nil {
			if x, y, ok := scene.Motion.Position(u.ID); ok {
				p = br.layout.ToScreenF(x, y)
			}
		}
		skipRing := u.Role == core.RoleEnemy && u.CanSkipAction
		br.drawUnit(screen, p, u.Role, skipRing, br.roleColor(u.Role))
	}
}

func (br *BoardRenderer) drawUnit(screen *ebiten.Image, p layout.Point, role core.Role, skipRing bool, clr color.RGBA) {
	r := float32(br.layout.Radius * unitScale)
	x, y := float32(p.X), float32(p.Y)
	vector.DrawFilledCircle(screen, x, y, r, clr, true)
	if skipRing {
		vector.StrokeCircle(screen, x, y, float32(br.layout.Radius), skipRingWidth, common.Fade(clr, 0.8), true)
	}
	if clr.A == 255 {
		br.drawCenteredLabel(screen, roleSymbol(role), p)
	}
}

func (br *BoardRenderer) drawCenteredLabel(screen *ebiten.Image, label string, p layout.Point) {
	if br.defaultFont == nil {
		return
	}
	bounds := text.BoundString(br.defaultFont, label)
	x := int(p.X) - bounds.Dx()/2
	y := int(p.Y) + labelBaseline
	text.Draw(screen, label, br.defaultFont, x, y, common.LabelColor)
}

// DrawCoordinates prints x,y under every vertex
func (br *BoardRenderer) DrawCoordinates(screen *ebiten.Image, g *core.Graph) {
	if br.defaultFont == nil {
		return
	}
	for id := 0; id < g.VertexCount(); id++ {
		c := g.Coord(core.VertexID(id))
		p := br.layout.ToScreen(c)
		label := strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
		bounds := text.BoundString(br.defaultFont, label)
		text.Draw(screen, label, br.defaultFont, int(p.X)-bounds.Dx()/2, int(p.Y+br.layout.Radius)+14, common.Fade(br.palette.Vertex, 0.6))
	}
}

func (br *BoardRenderer) roleColor(role core.Role) color.RGBA {
	if role == core.RolePlayer {
		return br.palette.Player
	}
	return br.palette.Enemy
}

func roleSymbol(role core.Role) string {
	if role == core.RolePlayer {
		return string(game.PlayerSymbol)
	}
	return string(game.EnemySymbol)
}
