package main

import (
	"flag"
	"fmt"
	"os"

	scenariocatalog "github.com/asketmc/guilds-of-bash/tools/scenario_catalog"
)

func main() {
	root := flag.String("dir", ".", "directory containing scenario log headers")
	jsonFlag := flag.Bool("json", false, "emit JSON instead of human-readable output")
	flag.Parse()

	entries, err := scenariocatalog.List(*root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *jsonFlag {
		payload, err := scenariocatalog.MarshalEntries(entries)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(payload))
		return
	}

	for _, entry := range entries {
		fmt.Printf("%s (schema %d)\n", entry.LogPath, entry.Header.SchemaVersion)
		fmt.Printf("  seed: %d\n", entry.Header.Seed)
		fmt.Printf("  steps: %d\n", entry.Header.StepCount)
		fmt.Printf("  final hash: %s\n", entry.Header.FinalHash)
		fmt.Printf("  header: %s\n", entry.HeaderPath)
	}
}
