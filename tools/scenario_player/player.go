// Package scenarioplayer loads a rolled scenario log and re-derives its
// final state by independently re-running the recorded commands through a
// fresh engine/rng pair, adapted from the teacher's replay_player (see
// DESIGN.md). Unlike the teacher's bundle reader, it never trusts the log's
// claimed hash: it recomputes it and reports a mismatch as an error.
package scenarioplayer

import (
	"fmt"

	"github.com/asketmc/guilds-of-bash/engine"
	"github.com/asketmc/guilds-of-bash/internal/replay"
	"github.com/asketmc/guilds-of-bash/rng"
)

// Result summarises one played-back scenario.
type Result struct {
	Seed        uint32
	StepCount   int
	ClaimedHash string
	ActualHash  string
	Events      []engine.Event
}

// Play loads the scenario log at path, replays its commands through a fresh
// engine state seeded from the log itself, and returns the outcome. It
// returns an error if the recomputed hash does not match what the log
// claims — the one condition that distinguishes a verified replay from a
// merely readable file.
func Play(path string) (Result, error) {
	loader, err := replay.Load(path)
	if err != nil {
		return Result{}, err
	}

	state := engine.InitialStateWithEconomy(loader.Seed(), loader.StartingMoneyCopper())
	source := rng.New(int64(loader.Seed()))
	var events []engine.Event

	err = loader.Replay(func(step replay.StepRecord) error {
		//1.- Re-run each recorded command; ignore the recorded events and
		// trust only what Step itself produces this time around.
		var stepEvents []engine.Event
		state, stepEvents = engine.Step(state, step.Command, source)
		events = append(events, stepEvents...)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	actual := engine.HashState(state)
	result := Result{
		Seed:        loader.Seed(),
		StepCount:   len(loader.Steps()),
		ClaimedHash: loader.FinalHash(),
		ActualHash:  actual,
		Events:      events,
	}
	if actual != loader.FinalHash() {
		return result, fmt.Errorf("replayed hash %q does not match recorded final hash %q", actual, loader.FinalHash())
	}
	return result, nil
}
