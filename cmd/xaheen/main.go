package main

import (
	"os"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/cli/commands"
)

// Version information - set at build time via ldflags
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	commands.Version = version
	commands.GitCommit = gitCommit
	commands.BuildDate = buildDate

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
