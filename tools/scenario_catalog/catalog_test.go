package scenariocatalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asketmc/guilds-of-bash/internal/replay"
)

func TestListCollectsHeaders(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "alpha")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	header := replay.Header{
		SchemaVersion: replay.HeaderSchemaVersion,
		Seed:          42,
		StepCount:     3,
		FinalHash:     "deadbeef",
		FilePointer:   "alpha-20240101T000000Z.jsonl.zst",
	}
	headerPath := filepath.Join(dataDir, "alpha-20240101T000000Z.header.json")
	if err := replay.WriteHeader(headerPath, header); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}

	entries, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected single entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Header.Seed != 42 {
		t.Fatalf("unexpected seed: %d", entry.Header.Seed)
	}
	if entry.LogPath != filepath.Join(dataDir, "alpha-20240101T000000Z.jsonl.zst") {
		t.Fatalf("unexpected log path: %q", entry.LogPath)
	}

	payload, err := MarshalEntries(entries)
	if err != nil {
		t.Fatalf("MarshalEntries: %v", err)
	}
	if len(payload) == 0 {
		t.Fatalf("expected JSON payload to be non-empty")
	}
}

func TestListRejectsMissingRoot(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error listing a missing root")
	}
}
