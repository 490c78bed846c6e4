// Package main is the entry point for the depmap CLI.
package main

import (
	"github.com/huangsam/depmap/cmd"
	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/internal/iostore"
)

func main() {
	// Wire the global run tracking manager into the command layer.
	cmd.SetRunManager(iostore.Manager)

	err := cmd.Execute()

	// Shutdown happens before the fatal exit below so a command error
	// cannot skip it.
	iostore.CloseRunTracking()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
