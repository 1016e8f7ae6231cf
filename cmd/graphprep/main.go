package main

import (
	"os"

	"github.com/graphprep-dev/graphprep/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
