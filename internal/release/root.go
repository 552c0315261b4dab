// Package release implements the epochver command line: epoch semantic
// versioning driven by conventional commits and git tags. Tags are the
// single source of truth; no files are modified.
package release

import (
	"github.com/spf13/cobra"
)

var repoPath string

var rootCmd = &cobra.Command{
	Use:   "epochver",
	Short: "Epoch semantic versioning from conventional commits",
	Long: `Epochver derives version bumps from conventional commit messages and
records them as git tags.

Versions use epoch semantic versioning: an extra top-level component,
senior to major, reserved for sweeping architectural changes. The epoch
is folded into the serialized major as epoch*1000+major, so v1002.3.4
means epoch 1, major 2, minor 3, patch 4.

Commit types map to bumps the usual way (fix -> patch, feat -> minor,
breaking -> major) with two extra types, "epoch" and "arch", that bump
the epoch.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", "", "path to the git repository (default: current directory)")
}
