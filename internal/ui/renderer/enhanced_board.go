package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/GraphChase/internal/common"
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/layout"
)

var (
	ValidMoveColor = color.RGBA{100, 255, 100, 128} // Semi-transparent green
	HoverColor     = color.RGBA{255, 255, 255, 64}  // Semi-transparent white
	DragColor      = common.HighlightColor
)

// EnhancedBoardRenderer adds input feedback on top of the board: the legal
// destinations of the player, the hovered vertex and the drag in progress.
type EnhancedBoardRenderer struct {
	*BoardRenderer

	hover      core.VertexID
	legalMoves []core.Edge

	dragging         bool
	dragFrom, dragTo layout.Point
	showCoordinates  bool
}

func NewEnhancedBoardRenderer(l layout.Layout, p common.Palette, f font.Face) *EnhancedBoardRenderer {
	return &EnhancedBoardRenderer{
		BoardRenderer: NewBoardRenderer(l, p, f),
		hover:         core.NoVertex,
	}
}

func (ebr *EnhancedBoardRenderer) SetHover(v core.VertexID) {
	ebr.hover = v
}

// SetLegalMoves replaces the highlighted destinations; nil clears them
func (ebr *EnhancedBoardRenderer) SetLegalMoves(moves []core.Edge) {
	ebr.legalMoves = moves
}

func (ebr *EnhancedBoardRenderer) SetDrag(from, to layout.Point, dragging bool) {
	ebr.dragFrom, ebr.dragTo, ebr.dragging = from, to, dragging
}

func (ebr *EnhancedBoardRenderer) ToggleCoordinates() {
	ebr.showCoordinates = !ebr.showCoordinates
}

func (ebr *EnhancedBoardRenderer) Draw(screen *ebiten.Image, scene Scene) {
	if scene.Graph != nil {
		ebr.drawUnderlays(screen, scene.Graph)
	}
	ebr.BoardRenderer.Draw(screen, scene)

	if ebr.showCoordinates && scene.Graph != nil {
		ebr.DrawCoordinates(screen, scene.Graph)
	}
	if ebr.dragging {
		vector.StrokeLine(screen,
			float32(ebr.dragFrom.X), float32(ebr.dragFrom.Y),
			float32(ebr.dragTo.X), float32(ebr.dragTo.Y),
			2, DragColor, true)
	}
}

func (ebr *EnhancedBoardRenderer) drawUnderlays(screen *ebiten.Image, g *core.Graph) {
	r := float32(ebr.layout.Radius * 1.4)
	for _, e := range ebr.legalMoves {
		a := ebr.layout.ToScreen(g.Coord(e.From))
		b := ebr.layout.ToScreen(g.Coord(e.To))
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), edgeWidth*2, ValidMoveColor, true)
		vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), r, ValidMoveColor, true)
	}

	if ebr.hover != core.NoVertex && g.Contains(ebr.hover) {
		p := ebr.layout.ToScreen(g.Coord(ebr.hover))
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), r, HoverColor, true)
	}
}
