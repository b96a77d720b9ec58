// Package runner drives a full match: Phase 0 placement, the Phase->=1
// turn loop, and ledger persistence, per spec.md section 4.8. Grounded
// on the teacher's internal/bot.RunGame loop, adapted from a
// DB-persisted Diplomacy game to the judge's agent-IO/ledger-sink
// interfaces.
package runner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/htamlive/cliquey-dtai-judge/internal/agentio"
	"github.com/htamlive/cliquey-dtai-judge/internal/hexgame"
	"github.com/htamlive/cliquey-dtai-judge/internal/ledger"
	"github.com/htamlive/cliquey-dtai-judge/internal/wire"
)

// Config configures a single match run.
type Config struct {
	Agents [3]agentio.Agent
	Sink   ledger.Sink
}

// Result summarizes a completed match, for the CLI's --json summary.
type Result struct {
	Turns     int     `json:"turns"`
	Survivors [3]bool `json:"survivors"`
	Gold      [3]int  `json:"gold"`
}

// Run plays Phase 0 and then the turn loop to completion, appending one
// ledger entry after Phase 0 and one after every subsequent turn
// (spec.md section 4.8). It returns once State.Over() holds, or earlier
// with an error if ctx is cancelled or the sink rejects an entry; the
// sink is closed exactly once on every path.
func Run(ctx context.Context, s *hexgame.State, cfg Config) (*Result, error) {
	j := hexgame.NewJudge(s)

	closed := false
	defer func() {
		if !closed {
			cfg.Sink.Close()
		}
	}()

	if err := runPhase0(ctx, j, s, cfg.Agents); err != nil {
		return nil, err
	}
	j.StartMatch()

	if err := appendSnapshot(cfg.Sink, s); err != nil {
		return nil, err
	}

	for !s.Over() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.Turn++
		moves := askAllPhaseN(ctx, j, s, cfg.Agents)
		j.ResolveTurn(moves)

		if err := appendSnapshot(cfg.Sink, s); err != nil {
			return nil, err
		}

		log.Debug().Int("turn", s.Turn).Int("moves_left", s.MovesLeft).Msg("turn resolved")
	}

	closed = true
	if err := cfg.Sink.Close(); err != nil {
		return nil, fmt.Errorf("runner: close ledger sink: %w", err)
	}

	return buildResult(s), nil
}

// runPhase0 asks every agent for its start placement and applies it via
// the judge's override rule.
func runPhase0(ctx context.Context, j *hexgame.Judge, s *hexgame.State, agents [3]agentio.Agent) error {
	for i, agent := range agents {
		team := hexgame.TeamID(i + 1)
		input := wire.FormatPhase0Input(s.Map.Radius, s.MovesLeft, team, s.Map.NonEmptyCells())

		reply := agent.Ask(ctx, input)
		submitted, ok := wire.ParsePhase0Reply(reply)
		if !ok {
			submitted = hexgame.Coord{}
		}

		pos := j.PlaceStart(team, submitted)
		log.Info().Int("team", int(team)).Interface("position", pos).Msg("phase 0 placement")
	}
	return nil
}

// askAllPhaseN asks every agent for its Phase->=1 move, in team order.
// Asking order is purely an I/O convenience: every input is built from
// the pre-turn board, so the three asks observe identical state
// regardless of order (spec.md section 5).
func askAllPhaseN(ctx context.Context, j *hexgame.Judge, s *hexgame.State, agents [3]agentio.Agent) [3]hexgame.Move {
	var moves [3]hexgame.Move
	for i, agent := range agents {
		team := hexgame.TeamID(i + 1)
		input := formatPhaseNInput(s, team)
		reply := agent.Ask(ctx, input)
		moves[i] = wire.ParsePhaseNReply(reply)
	}
	return moves
}

func formatPhaseNInput(s *hexgame.State, team hexgame.TeamID) string {
	own := s.Player(team)
	ownShip := wire.OwnShip{
		Position: own.Position,
		Gold:     own.Gold,
		Shield:   own.Shield,
		Missiles: own.Missiles,
	}

	var others [2]wire.OtherShip
	for i, offset := range [2]int{1, 2} {
		otherTeam := hexgame.TeamID((int(team)-1+offset)%3 + 1)
		other := s.Player(otherTeam)
		others[i] = wire.OtherShip{
			Position: other.Position,
			Alive:    other.Alive,
			Gold:     other.Gold,
			Shield:   other.Shield,
		}
	}

	return wire.FormatPhaseNInput(s.Map.Radius, s.MovesLeft, ownShip, others, s.Map.NonEmptyCells())
}

func appendSnapshot(sink ledger.Sink, s *hexgame.State) error {
	entry := ledger.FromSnapshot(s.Snapshot())
	if err := sink.Append(entry); err != nil {
		return fmt.Errorf("runner: append ledger entry: %w", err)
	}
	return nil
}

func buildResult(s *hexgame.State) *Result {
	var res Result
	res.Turns = s.Turn
	for i, p := range s.Players {
		res.Survivors[i] = p.Alive
		res.Gold[i] = p.Gold
	}
	return &res
}
