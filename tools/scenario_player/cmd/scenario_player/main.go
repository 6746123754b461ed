package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	scenarioplayer "github.com/asketmc/guilds-of-bash/tools/scenario_player"
)

func main() {
	path := flag.String("path", "", "path to a rolled scenario log (.jsonl.zst)")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "path flag is required")
		os.Exit(1)
	}

	result, err := scenarioplayer.Play(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	//1.- Render the verified replay as JSON so callers can pipe the output elsewhere.
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, "encode error:", err)
		os.Exit(3)
	}
}
