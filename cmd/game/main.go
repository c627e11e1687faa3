package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GraphChase/internal/config"
	"github.com/mitchelldurbincs/GraphChase/internal/game"
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GraphChase/internal/game/loader"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	boardFile := flag.String("board", "", "Board file (.xml or .yaml); empty to use config or generate one")
	seed := flag.Int64("seed", 0, "Map generator seed (0 to use config or the clock)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	tracePath := flag.String("trace", "", "Write every game event as JSON lines to this file")
	exportPath := flag.String("export", "", "Write the starting board to this file (.xml or .yaml)")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors in the board drawing")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *boardFile != "" {
		cfg.Game.BoardFile = *boardFile
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameCfg, err := game.GameConfigFromSettings(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid game settings")
	}
	gameCfg.EventBus = events.NewEventBusWithLogger(log.Logger)

	if cfg.Development.VerboseLogging {
		eventLogger := subscribers.NewLoggerSubscriber("event-logger", log.Logger, zerolog.DebugLevel)
		eventLogger.SetDevMode(cfg.Development.DevEventPayloads)
		gameCfg.EventBus.Subscribe(eventLogger)
	}

	if *tracePath != "" {
		f, err := os.Create(*tracePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *tracePath).Msg("Failed to create trace file")
		}
		defer f.Close()
		gameCfg.EventBus.Subscribe(newTraceWriter(f))
	}

	engine, err := game.NewGameEngine(ctx, gameCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start game")
	}

	if *exportPath != "" {
		if err := exportBoard(engine.Graph(), *exportPath); err != nil {
			log.Fatal().Err(err).Str("path", *exportPath).Msg("Failed to export board")
		}
		log.Info().Str("path", *exportPath).Msg("Board exported")
	}

	play(ctx, engine, os.Stdin, os.Stdout, !*noColor)
}

// play runs the read-move-draw loop until the input ends, the player quits or
// ctx is cancelled
func play(ctx context.Context, engine *game.Engine, in io.Reader, out io.Writer, color bool) {
	draw := func() {
		if color {
			fmt.Fprint(out, engine.ColorBoard())
		} else {
			fmt.Fprint(out, engine.Board())
		}
	}

	draw()
	fmt.Fprintln(out, "Enter x,y to move, w to wait, m for moves, s for stats, r to restart, q to quit")

	done := make(chan struct{})
	defer close(done)
	lines := scanLines(in, done)

	for {
		fmt.Fprint(out, "> ")
		line, ok := nextLine(ctx, lines)
		if !ok {
			break
		}

		cmd, err := parseCommand(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		switch cmd.kind {
		case cmdNone:
			continue
		case cmdQuit:
			printStats(out, engine.Stats())
			return
		case cmdStats:
			printStats(out, engine.Stats())
			continue
		case cmdMoves:
			for _, e := range engine.LegalMoves() {
				fmt.Fprintf(out, "  %s\n", engine.Graph().Coord(e.To))
			}
			continue
		case cmdRestart:
			if err := engine.Restart(ctx); err != nil {
				fmt.Fprintln(out, describe(err))
				continue
			}
		case cmdWait:
			if _, err := engine.Wait(ctx); err != nil {
				fmt.Fprintln(out, describe(err))
				continue
			}
		case cmdMove:
			if _, err := engine.MoveTo(ctx, cmd.to); err != nil {
				fmt.Fprintln(out, describe(err))
				continue
			}
		}

		draw()
		if engine.IsGameOver() {
			fmt.Fprintf(out, "Game over: %s. r to play again, q to quit\n", engine.Outcome())
		}
	}
	printStats(out, engine.Stats())
}

// scanLines reads in on its own goroutine so a blocked read never holds up
// cancellation. The channel closes at end of input or once done closes.
func scanLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

// nextLine waits for a line of input. ok is false when the input has ended or
// ctx is cancelled.
func nextLine(ctx context.Context, lines <-chan string) (line string, ok bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok = <-lines:
		return line, ok
	}
}

type commandKind int

const (
	cmdNone commandKind = iota
	cmdMove
	cmdWait
	cmdMoves
	cmdStats
	cmdRestart
	cmdQuit
)

type command struct {
	kind commandKind
	to   core.Coordinate
}

// parseCommand reads one line of player input
func parseCommand(line string) (command, error) {
	line = strings.TrimSpace(strings.ToLower(line))
	switch line {
	case "":
		return command{kind: cmdNone}, nil
	case "w", "wait":
		return command{kind: cmdWait}, nil
	case "m", "moves":
		return command{kind: cmdMoves}, nil
	case "s", "stats":
		return command{kind: cmdStats}, nil
	case "r", "restart":
		return command{kind: cmdRestart}, nil
	case "q", "quit", "exit":
		return command{kind: cmdQuit}, nil
	}

	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return command{}, fmt.Errorf("expected x,y but got %q", line)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return command{}, fmt.Errorf("bad x in %q: %w", line, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return command{}, fmt.Errorf("bad y in %q: %w", line, err)
	}
	return command{kind: cmdMove, to: core.NewCoordinate(x, y)}, nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, core.ErrIllegalMove):
		return "Illegal move: " + err.Error()
	case errors.Is(err, core.ErrGameOver):
		return "The game is over, r to play again"
	case errors.Is(err, game.ErrNotFinished):
		return "The game is still running"
	default:
		return "Error: " + err.Error()
	}
}

func printStats(out io.Writer, s game.Stats) {
	fmt.Fprintf(out, "Turns: %d | Outcome: %s | Captured: %d | Enemies left: %d | Rejected moves: %d | Elapsed: %s\n",
		s.Turn, s.Outcome, s.EnemiesCaptured, s.EnemiesLeft, s.RejectedMoves, s.Elapsed.Round(time.Millisecond))
}

func exportBoard(g *core.Graph, path string) error {
	format, err := loader.DetectFormat(path)
	if err != nil {
		return err
	}
	data, err := loader.Encode(g, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// traceWriter appends every event to w as one JSON object per line
type traceWriter struct {
	w io.Writer
}

func newTraceWriter(w io.Writer) *traceWriter {
	return &traceWriter{w: w}
}

func (t *traceWriter) ID() string               { return "trace-writer" }
func (t *traceWriter) InterestedIn(string) bool { return true }

func (t *traceWriter) HandleEvent(e events.Event) {
	data, err := events.EncodeJSON(e)
	if err != nil {
		log.Warn().Err(err).Str("event_type", e.Type()).Msg("Failed to encode event for trace")
		return
	}
	data = append(data, '\n')
	if _, err := t.w.Write(data); err != nil {
		log.Warn().Err(err).Msg("Failed to write trace")
	}
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Logs go to stderr so they never interleave with the board on stdout
	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
