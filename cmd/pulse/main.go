package main

import (
	"os"

	"github.com/wonny/pulseboard/backend/cmd/pulse/commands"
)

// main is the entry point for the Pulseboard CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/pulse [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
