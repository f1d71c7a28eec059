package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

type versionView struct {
	BuildInfo
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func (v versionView) String() string {
	return v.BuildInfo.String() + " " + v.GoVersion + " " + v.Platform
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintResult(cmd, versionView{
				BuildInfo: BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate},
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			})
		},
	}
}
