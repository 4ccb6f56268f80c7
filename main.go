// main is the entry point for the triage CLI.
package main

import (
	"os"

	"github.com/triagehq/triage/cmd"
	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/internal/iosnapshot"
)

func main() {
	// Wire the global store manager before any command runs.
	cmd.SetStoreManager(iosnapshot.Manager)

	err := cmd.Execute()

	iosnapshot.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
