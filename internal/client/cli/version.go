package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Build info, set with -ldflags at build time.
var (
	Version   = "N/A"
	BuildDate = "N/A"
	GitCommit = "N/A"
)

type versionInfo struct {
	Version   string `yaml:"version"`
	BuildDate string `yaml:"build_date"`
	GitCommit string `yaml:"git_commit"`
	GoVersion string `yaml:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   Version,
				BuildDate: BuildDate,
				GitCommit: GitCommit,
				GoVersion: runtime.Version(),
			}
			if rootOpts.Format == "yaml" {
				return writeYAML(deps.IO, info)
			}
			deps.IO.Printf("Build version: %s\n", info.Version)
			deps.IO.Printf("Build date: %s\n", info.BuildDate)
			deps.IO.Printf("Build commit: %s\n", info.GitCommit)
			deps.IO.Printf("Go version: %s\n", info.GoVersion)
			return nil
		},
	}
}
