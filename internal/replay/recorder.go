package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/asketmc/guilds-of-bash/engine"
)

var scenarioIDCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// StepRecord pairs one reducer invocation with the events it produced, in
// the order the scenario ran them.
type StepRecord struct {
	Index   int            `json:"index"`
	Command engine.Command `json:"command"`
	Events  []engine.Event `json:"events"`
}

// scenarioLog is the on-disk envelope a Recorder rolls and a Loader reads
// back. It carries enough of the run's own inputs (seed, steps) that a
// loader can re-derive the final hash independently and compare it against
// FinalHash rather than trusting the file blindly.
type scenarioLog struct {
	SchemaVersion       int          `json:"schema_version"`
	Seed                uint32       `json:"seed"`
	StartingMoneyCopper int64        `json:"starting_money_copper"`
	CreatedAt           string       `json:"created_at"`
	Steps               []StepRecord `json:"steps"`
	FinalHash           string       `json:"final_hash"`
}

// Stats summarises recorder state for monitoring or test assertions.
type Stats struct {
	BufferedSteps int
	Dumps         int64
	LastDumpURI   string
	LastDumpTime  time.Time
}

// Recorder buffers a scenario's steps until Roll persists them as a
// zstd-compressed JSON log plus a sidecar header (spec.md §1 "scenario-log
// serializer"; see SPEC_FULL.md §4).
type Recorder struct {
	mu                  sync.Mutex
	dir                 string
	seed                uint32
	startingMoneyCopper int64
	now                 func() time.Time
	steps               []StepRecord

	dumps       int64
	lastDump    time.Time
	lastDumpURI string
}

// NewRecorder constructs a recorder that will persist scenario logs into dir.
// startingMoneyCopper is recorded alongside seed so a scenario_player replay
// can rebuild the exact starting state the run began from, even when it
// differs from engine.InitialState's default.
func NewRecorder(dir string, seed uint32, startingMoneyCopper int64, clock func() time.Time) (*Recorder, error) {
	if dir == "" {
		return nil, fmt.Errorf("scenario log directory must be provided")
	}
	if clock == nil {
		clock = time.Now
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Recorder{dir: dir, seed: seed, startingMoneyCopper: startingMoneyCopper, now: clock}, nil
}

// RecordStep appends one (command, events) pair to the buffer. events is
// cloned so later mutation by the caller cannot corrupt the recording.
func (r *Recorder) RecordStep(cmd engine.Command, events []engine.Event) {
	if r == nil {
		return
	}
	clone := append([]engine.Event(nil), events...)

	r.mu.Lock()
	//1.- Buffer the step so Roll can persist the whole scenario atomically.
	r.steps = append(r.steps, StepRecord{Index: len(r.steps), Command: cmd, Events: clone})
	r.mu.Unlock()
}

// Roll writes the buffered steps to a zstd-compressed JSON log, writes its
// header, and clears the buffer so a fresh scenario can begin.
func (r *Recorder) Roll(scenarioID, finalHash string) (string, error) {
	if r == nil {
		return "", fmt.Errorf("recorder not configured")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	//1.- Bail out gracefully when nothing has been recorded yet.
	if len(r.steps) == 0 {
		return "", fmt.Errorf("no scenario steps buffered")
	}

	cleaned := scenarioIDCleaner.ReplaceAllString(scenarioID, "")
	if cleaned == "" {
		cleaned = "scenario"
	}
	created := r.now().UTC()
	stamp := created.Format("20060102T150405Z")
	filename := fmt.Sprintf("%s-%s.jsonl.zst", cleaned, stamp)
	path := filepath.Join(r.dir, filename)
	headerPath := filepath.Join(r.dir, fmt.Sprintf("%s-%s.header.json", cleaned, stamp))

	//2.- Encode using JSON so downstream tooling (and the loader) can parse it
	// without a schema registry.
	log := scenarioLog{
		SchemaVersion:       HeaderSchemaVersion,
		Seed:                r.seed,
		StartingMoneyCopper: r.startingMoneyCopper,
		CreatedAt:           created.Format(time.RFC3339Nano),
		Steps:               r.steps,
		FinalHash:           finalHash,
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	encoder, err := zstd.NewWriter(file)
	if err != nil {
		_ = file.Close()
		return "", err
	}
	if _, err := encoder.Write(data); err != nil {
		_ = encoder.Close()
		_ = file.Close()
		return "", err
	}
	if err := encoder.Close(); err != nil {
		_ = file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	header := Header{
		SchemaVersion:       HeaderSchemaVersion,
		Seed:                r.seed,
		StartingMoneyCopper: r.startingMoneyCopper,
		StepCount:           len(r.steps),
		FinalHash:           finalHash,
		FilePointer:         filepath.Base(path),
	}
	if err := WriteHeader(headerPath, header); err != nil {
		return "", err
	}

	//3.- Reset the buffer so a fresh scenario can begin immediately.
	r.steps = nil
	r.dumps++
	r.lastDump = created
	r.lastDumpURI = path
	return path, nil
}

// Snapshot returns statistics describing the recorder state.
func (r *Recorder) Snapshot() Stats {
	if r == nil {
		return Stats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	//1.- Copy the counters so callers cannot race with the next Roll.
	return Stats{
		BufferedSteps: len(r.steps),
		Dumps:         r.dumps,
		LastDumpURI:   r.lastDumpURI,
		LastDumpTime:  r.lastDump,
	}
}
