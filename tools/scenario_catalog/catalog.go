// Package scenariocatalog walks a directory of rolled scenario logs and
// surfaces their headers for operator tooling, adapted from the teacher's
// replay_catalog (see DESIGN.md).
package scenariocatalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/asketmc/guilds-of-bash/internal/replay"
)

// Entry captures a scenario header alongside its resolved log path.
type Entry struct {
	HeaderPath string        `json:"header_path"`
	LogPath    string        `json:"log_path"`
	Header     replay.Header `json:"header"`
}

// List walks the directory tree and returns parsed scenario headers, sorted
// by seed then by log path for stable output across runs.
func List(root string) ([]Entry, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root directory must be provided")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root must be a directory")
	}

	var entries []Entry
	//1.- Walk the directory tree looking for rolled scenario headers.
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".header.json") {
			return nil
		}
		header, err := replay.ReadHeader(path)
		if err != nil {
			return err
		}
		logPath := header.FilePointer
		if !filepath.IsAbs(logPath) {
			logPath = filepath.Join(filepath.Dir(path), logPath)
		}
		entries = append(entries, Entry{HeaderPath: path, LogPath: logPath, Header: header})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Header.Seed == entries[j].Header.Seed {
			return entries[i].LogPath < entries[j].LogPath
		}
		return entries[i].Header.Seed < entries[j].Header.Seed
	})
	return entries, nil
}

// MarshalEntries produces a stable JSON representation of the entries for CLI output.
func MarshalEntries(entries []Entry) ([]byte, error) {
	//1.- Marshal with indentation to keep CLI output legible for operators.
	return json.MarshalIndent(entries, "", "  ")
}
