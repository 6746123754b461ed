package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/zstd"
)

// Loader rehydrates a zstd-compressed scenario log for deterministic replay.
type Loader struct {
	seed                uint32
	startingMoneyCopper int64
	finalHash           string
	steps               []StepRecord
}

// Load reads the scenario log at path and returns a Loader over its steps,
// sorted by Index so replay order never depends on on-disk byte order.
func Load(path string) (*Loader, error) {
	if path == "" {
		return nil, fmt.Errorf("scenario log path must be provided")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder, err := zstd.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, err
	}

	var log scenarioLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("decode scenario log: %w", err)
	}

	steps := append([]StepRecord(nil), log.Steps...)
	//1.- Sort defensively: the writer always emits in index order, but a
	// hand-edited or concatenated log should still replay deterministically.
	sort.Slice(steps, func(i, j int) bool { return steps[i].Index < steps[j].Index })

	return &Loader{seed: log.Seed, startingMoneyCopper: log.StartingMoneyCopper, finalHash: log.FinalHash, steps: steps}, nil
}

// Seed returns the scenario's starting seed.
func (l *Loader) Seed() uint32 {
	if l == nil {
		return 0
	}
	return l.seed
}

// StartingMoneyCopper returns the starting economy balance the scenario was
// recorded with, so a replay rebuilds the exact state the run began from.
func (l *Loader) StartingMoneyCopper() int64 {
	if l == nil {
		return 0
	}
	return l.startingMoneyCopper
}

// FinalHash returns the hash the recording claims the scenario ended at.
// Callers that replay the steps through engine.Step should compare their own
// computed hash against this value rather than trust it blindly.
func (l *Loader) FinalHash() string {
	if l == nil {
		return ""
	}
	return l.finalHash
}

// Replay invokes apply once per step, in index order.
func (l *Loader) Replay(apply func(StepRecord) error) error {
	if l == nil {
		return fmt.Errorf("loader not initialised")
	}
	if apply == nil {
		return fmt.Errorf("replay callback must be provided")
	}
	for _, step := range l.steps {
		//1.- Invoke the callback for each step to drive a deterministic re-run.
		if err := apply(step); err != nil {
			return err
		}
	}
	return nil
}

// Steps exposes a defensive copy of the loaded steps for test assertions.
func (l *Loader) Steps() []StepRecord {
	if l == nil {
		return nil
	}
	out := make([]StepRecord, len(l.steps))
	copy(out, l.steps)
	return out
}
