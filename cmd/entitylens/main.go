// Command entitylens highlights named and semantic entities in text.
package main

import (
	"os"

	"github.com/turtacn/entitylens/internal/interfaces/cli"
	"github.com/turtacn/entitylens/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	// cli.Execute has already reported the error on stderr.
	if err := cli.Execute(); err != nil {
		os.Exit(errors.ExitStatus(err))
	}
}
