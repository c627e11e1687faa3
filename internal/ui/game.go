package ui

import (
	"context"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/GraphChase/internal/common"
	"github.com/mitchelldurbincs/GraphChase/internal/config"
	"github.com/mitchelldurbincs/GraphChase/internal/game"
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/anim"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/control"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/input"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/layout"
	"github.com/mitchelldurbincs/GraphChase/internal/ui/renderer"
)

// UI configuration functions
func ScreenWidth() int {
	return config.Get().UI.Window.Width
}

func ScreenHeight() int {
	return config.Get().UI.Window.Height
}

// UIGame is the ebiten.Game that lets a human play the chase
type UIGame struct {
	ctx    context.Context
	engine *game.Engine
	logger zerolog.Logger

	controller    *control.Controller
	animator      *anim.Animator
	boardRenderer *renderer.EnhancedBoardRenderer
	inputHandler  *input.Handler
	defaultFont   font.Face
	palette       common.Palette

	// UI state
	width, height int
	statusMessage string
	messageTimer  int

	// Config changes arrive on the watcher goroutine and are applied in Update
	mu            sync.Mutex
	pendingConfig *config.Config
}

// NewUIGame creates a new Ebitengine game instance. The animator subscribes to
// the engine's event bus, so construct the UI before the first turn.
func NewUIGame(ctx context.Context, engine *game.Engine, logger zerolog.Logger) (*UIGame, error) {
	c := config.Get()
	g := &UIGame{
		ctx:         ctx,
		engine:      engine,
		logger:      logger.With().Str("component", "UI").Logger(),
		defaultFont: basicfont.Face7x13,
		palette:     common.PaletteFromConfig(c.Colors),
		animator:    anim.New(anim.FromConfig(c.UI.Animation)),
		width:       c.UI.Window.Width,
		height:      c.UI.Window.Height,
	}

	l := layout.FromConfig(c.UI.Board)
	g.boardRenderer = renderer.NewEnhancedBoardRenderer(l, g.palette, g.defaultFont)
	g.inputHandler = input.NewHandler(l, c.UI.Input.MinDragPixels)
	g.controller = control.NewController(engine, g.animator, logger)

	engine.EventBus().Subscribe(g.animator)
	return g, nil
}

// QueueConfig schedules c to be applied on the next Update. Safe to call from
// any goroutine.
func (g *UIGame) QueueConfig(c *config.Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pendingConfig = c
}

func (g *UIGame) applyPendingConfig() {
	g.mu.Lock()
	c := g.pendingConfig
	g.pendingConfig = nil
	g.mu.Unlock()
	if c == nil {
		return
	}

	l := layout.FromConfig(c.UI.Board)
	g.palette = common.PaletteFromConfig(c.Colors)
	g.boardRenderer = renderer.NewEnhancedBoardRenderer(l, g.palette, g.defaultFont)
	g.inputHandler.SetLayout(l, c.UI.Input.MinDragPixels)
	g.width, g.height = c.UI.Window.Width, c.UI.Window.Height
	ebiten.SetWindowTitle(c.UI.Window.Title)
	g.logger.Info().Msg("Applied new UI settings")
}

// Update proceeds the game state.
func (g *UIGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.applyPendingConfig()
	g.animator.Update()
	if g.messageTimer > 0 {
		g.messageTimer--
	}

	board := g.engine.Graph()
	player := core.NoVertex
	if p := board.Player(); p != nil {
		player = p.Vertex
	}
	g.inputHandler.Update(board, player)
	if input.KeyJustPressed(ebiten.KeyC) {
		g.boardRenderer.ToggleCoordinates()
	}

	g.handleHumanTurn()

	g.boardRenderer.SetHover(g.inputHandler.Hovered())
	g.boardRenderer.SetDrag(g.inputHandler.Drag())
	if g.controller.Busy() {
		g.boardRenderer.SetLegalMoves(nil)
	} else {
		g.boardRenderer.SetLegalMoves(g.engine.LegalMoves())
	}
	return nil
}

// Draw renders the game screen.
func (g *UIGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	g.boardRenderer.Draw(screen, renderer.Scene{
		Graph:  g.engine.Graph(),
		Units:  g.engine.State().Units(),
		Ghosts: g.animator.Ghosts(),
		Motion: g.animator,
	})

	g.drawUI(screen)
}

// Layout defines the Ebitengine screen size.
func (g *UIGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}
