package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/control"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/layout"
)

// Handler turns raw mouse, touch and keyboard input into commands. A drag
// starting on a vertex becomes a move along the edge that best matches the
// drag direction; a short tap on a vertex becomes a move from the player's
// vertex to it.
type Handler struct {
	layout  layout.Layout
	minDrag float64

	// Pointer state
	pressed  bool
	active   pointer
	pressAt  layout.Point
	lastSeen layout.Point
	hover    core.VertexID

	pending []control.Command
}

func NewHandler(l layout.Layout, minDragPixels int) *Handler {
	return &Handler{
		layout:  l,
		minDrag: float64(minDragPixels),
		hover:   core.NoVertex,
	}
}

// SetLayout replaces the board layout, used when the config file changes
func (h *Handler) SetLayout(l layout.Layout, minDragPixels int) {
	h.layout = l
	h.minDrag = float64(minDragPixels)
}

// Update reads this tick's input. player is the player's current vertex, or
// core.NoVertex when there is none.
func (h *Handler) Update(g *core.Graph, player core.VertexID) {
	if g == nil {
		return
	}
	// VertexAt reports core.NoVertex on a miss
	h.hover, _ = h.layout.VertexAt(g, GetCursorPosition())

	h.handlePointer(g, player)
	h.handleKeyboard()
}

func (h *Handler) handlePointer(g *core.Graph, player core.VertexID) {
	if !h.pressed {
		if p, at, ok := justPressedPointer(); ok {
			h.pressed = true
			h.active = p
			h.pressAt = at
			h.lastSeen = at
		}
		return
	}

	if !h.active.justReleased() {
		h.lastSeen = h.active.position()
		return
	}
	h.pressed = false

	// Touch positions are gone once released; the mouse can still be read
	end := h.lastSeen
	if !h.active.touch {
		end = GetCursorPosition()
	}

	if end.Sub(h.pressAt).Len() >= h.minDrag {
		if edge, ok := h.layout.ResolveDrag(g, h.pressAt, end, h.minDrag); ok {
			h.push(control.Command{Kind: control.CommandMove, Edge: edge})
		}
		return
	}

	to, ok := h.layout.VertexAt(g, end)
	if ok && player != core.NoVertex && to != player {
		h.push(control.Command{Kind: control.CommandMove, Edge: core.NewEdge(player, to)})
	}
}

func (h *Handler) handleKeyboard() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyW):
		h.push(control.Command{Kind: control.CommandWait})
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		h.push(control.Command{Kind: control.CommandRestart})
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		h.push(control.Command{Kind: control.CommandPause})
	}
	if IsRightClickJustPressed() {
		h.pressed = false
	}
}

func (h *Handler) push(cmd control.Command) {
	h.pending = append(h.pending, cmd)
}

// Commands returns and clears the commands collected since the last call
func (h *Handler) Commands() []control.Command {
	cmds := h.pending
	h.pending = nil
	return cmds
}

// ClearCommands drops queued input, used while the board is busy
func (h *Handler) ClearCommands() {
	h.pending = nil
}

// Hovered returns the vertex under the cursor
func (h *Handler) Hovered() core.VertexID {
	return h.hover
}

// Drag returns the drag in progress, if any
func (h *Handler) Drag() (from, to layout.Point, dragging bool) {
	if !h.pressed {
		return layout.Point{}, layout.Point{}, false
	}
	return h.pressAt, h.lastSeen, h.lastSeen.Sub(h.pressAt).Len() >= h.minDrag
}

// KeyJustPressed is exposed for UI toggles that are not game commands
func KeyJustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}
