package ui

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"github.com/mitchelldurbincs/GraphChase/internal/common"
	"github.com/mitchelldurbincs/GraphChase/internal/game"
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/rules"
	"github.com/mitchelldurbincs/GraphChase/internal/game/states"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/control"
)

const messageFrames = 90 // 1.5 seconds at 60 FPS

// handleHumanTurn submits the commands gathered this tick. Input that arrives
// while the last turn is still animating is dropped.
func (g *UIGame) handleHumanTurn() {
	for _, cmd := range g.inputHandler.Commands() {
		msg, err := g.controller.Submit(g.ctx, cmd)
		switch {
		case errors.Is(err, control.ErrAnimating):
			continue
		case err != nil:
			g.showMessage(describeError(err, g.engine.Phase()), messageFrames)
		default:
			g.showMessage(msg, messageFrames)
		}
	}
}

func describeError(err error, phase states.GamePhase) string {
	switch {
	case errors.Is(err, core.ErrIllegalMove):
		return "Illegal move: pick a neighbour of the player"
	case errors.Is(err, core.ErrGameOver):
		return "Game over, press R to play again"
	case errors.Is(err, game.ErrNotFinished):
		return "Finish the game before restarting"
	case errors.Is(err, core.ErrTurnBusy) && phase == states.PhasePaused:
		return "Paused, press P to resume"
	case errors.Is(err, core.ErrTurnBusy):
		return "Busy"
	default:
		return err.Error()
	}
}

func (g *UIGame) showMessage(msg string, duration int) {
	g.statusMessage = msg
	g.messageTimer = duration
}

func (g *UIGame) drawUI(screen *ebiten.Image) {
	stats := g.engine.Stats()

	turnStr := fmt.Sprintf("Turn: %d  Enemies: %d  Captured: %d", stats.Turn, stats.EnemiesLeft, stats.EnemiesCaptured)
	ebitenutil.DebugPrintAt(screen, turnStr, 5, 5)

	phaseStr := fmt.Sprintf("Phase: %s", stats.Phase)
	ebitenutil.DebugPrintAt(screen, phaseStr, 5, 21)

	width, height := g.width, g.height

	switch g.engine.Outcome() {
	case rules.OutcomeWon:
		g.drawBanner(screen, "You caught them all! Press R to play again", g.palette.Player, width, height)
	case rules.OutcomeLost:
		g.drawBanner(screen, "Captured! Press R to try again", g.palette.Enemy, width, height)
	default:
		helpY := height - 50
		text.Draw(screen, "Drag or click: move", g.defaultFont, 5, helpY, color.Gray{200})
		text.Draw(screen, "Space: wait  P: pause  C: coords", g.defaultFont, 5, helpY+15, color.Gray{200})
	}

	if g.messageTimer > 0 && g.statusMessage != "" {
		msgX := width/2 - len(g.statusMessage)*7/2
		msgY := height - 20
		alpha := common.Clamp(float64(g.messageTimer)/30, 0, 1)
		text.Draw(screen, g.statusMessage, g.defaultFont, msgX, msgY, common.Fade(color.RGBA{255, 255, 255, 255}, alpha))
	}
}

func (g *UIGame) drawBanner(screen *ebiten.Image, msg string, clr color.RGBA, width, height int) {
	bounds := text.BoundString(g.defaultFont, msg)
	x := width/2 - bounds.Dx()/2
	y := height - 40
	text.Draw(screen, msg, g.defaultFont, x, y, clr)
}
