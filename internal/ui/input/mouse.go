package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/GraphChase/internal/ui/layout"
)

// pointer abstracts over the mouse and a single touch so a drag reads the
// same either way
type pointer struct {
	touch   bool
	touchID ebiten.TouchID
}

// justPressedPointer returns the pointer that went down this tick, preferring
// a touch over the mouse
func justPressedPointer() (pointer, layout.Point, bool) {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return pointer{touch: true, touchID: ids[0]}, pointAt(x, y), true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return pointer{}, GetCursorPosition(), true
	}
	return pointer{}, layout.Point{}, false
}

// position is only meaningful while the pointer is down
func (p pointer) position() layout.Point {
	if p.touch {
		return pointAt(ebiten.TouchPosition(p.touchID))
	}
	return GetCursorPosition()
}

func (p pointer) justReleased() bool {
	if p.touch {
		return inpututil.IsTouchJustReleased(p.touchID)
	}
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

func IsRightClickJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

func GetCursorPosition() layout.Point {
	return pointAt(ebiten.CursorPosition())
}

func pointAt(x, y int) layout.Point {
	return layout.Point{X: float64(x), Y: float64(y)}
}
