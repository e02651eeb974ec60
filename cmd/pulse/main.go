package main

import (
	"os"

	"github.com/mediapulse/pulse/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
