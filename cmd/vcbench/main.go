package main

import (
	"os"

	"github.com/LynnColeArt/visioncore/cmd/vcbench/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
