package main

import (
	"os"

	"github.com/outpost-hq/orgctl/cmd"
	"github.com/outpost-hq/orgctl/internal/errors"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
