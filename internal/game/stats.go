package game

import "time"

// Stats summarizes a game so far
type Stats struct {
	Turn            int
	Phase           string
	Outcome         string
	EnemiesLeft     int
	EnemiesCaptured int
	PlayerMoves     int
	RejectedMoves   int
	EnemyMoves      int
	EnemySkips      int
	Stranded        int
	Elapsed         time.Duration
}

// counters accumulated by the turn processor
type counters struct {
	enemiesCaptured int
	playerMoves     int
	rejectedMoves   int
	enemyMoves      int
	enemySkips      int
	stranded        int
}

// recordTurn folds a resolved turn into the running counters
func (e *Engine) recordTurn(summary TurnSummary) {
	if summary.PlayerMove != nil {
		e.counters.playerMoves++
		if summary.PlayerMove.Captured != nil {
			e.counters.enemiesCaptured++
		}
	}
	e.counters.enemyMoves += summary.Enemies.Moved
	e.counters.enemySkips += summary.Enemies.Skipped
	e.counters.stranded += summary.Enemies.Stranded
	for _, u := range summary.Enemies.Captured {
		if !u.IsPlayer() {
			e.counters.enemiesCaptured++
		}
	}

	e.logger.Debug().
		Int("turn", summary.Turn).
		Int("player_moves", e.counters.playerMoves).
		Int("enemy_moves", e.counters.enemyMoves).
		Int("enemy_skips", e.counters.enemySkips).
		Int("enemies_captured", e.counters.enemiesCaptured).
		Msg("Updated game stats")
}

// Stats returns a snapshot of the game statistics
func (e *Engine) Stats() Stats {
	return Stats{
		Turn:            e.gs.Turn,
		Phase:           e.stateMachine.CurrentPhase().String(),
		Outcome:         e.gs.Outcome.String(),
		EnemiesLeft:     len(e.gs.Board.Enemies()),
		EnemiesCaptured: e.counters.enemiesCaptured,
		PlayerMoves:     e.counters.playerMoves,
		RejectedMoves:   e.counters.rejectedMoves,
		EnemyMoves:      e.counters.enemyMoves,
		EnemySkips:      e.counters.enemySkips,
		Stranded:        e.counters.stranded,
		Elapsed:         e.stateMachine.GetContext().Elapsed(),
	}
}
