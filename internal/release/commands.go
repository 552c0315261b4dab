package release

import (
	"fmt"

	"github.com/mskaar/pensum/internal/conventional"
	"github.com/mskaar/pensum/internal/gitlog"
	"github.com/mskaar/pensum/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current version from git tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		git := gitlog.Collector{RepoPath: repoPath}

		current := git.CurrentVersion()
		fmt.Printf("Current version: %s\n", current)

		if dev := git.DevVersion(); dev != current {
			fmt.Printf("Development version: %s\n", dev)
		}

		v, err := version.Parse(current)
		if err != nil {
			return fmt.Errorf("current tag does not hold a valid version: %w", err)
		}
		fmt.Printf("  Epoch: %d\n", v.Epoch)
		fmt.Printf("  Major: %d\n", v.Major)
		fmt.Printf("  Minor: %d\n", v.Minor)
		fmt.Printf("  Patch: %d\n", v.Patch)
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze commits since the last version tag and suggest a bump",
	RunE: func(cmd *cobra.Command, args []string) error {
		git := gitlog.Collector{RepoPath: repoPath}

		analysis, err := analyzeRange(git)
		if err != nil {
			return err
		}

		printAnalysis(analysis)

		if analysis.Bump == conventional.BumpNone {
			return nil
		}

		current := git.CurrentVersion()
		cur, err := version.Parse(current)
		if err != nil {
			return fmt.Errorf("current tag does not hold a valid version: %w", err)
		}
		next, err := cur.Bump(analysis.Bump)
		if err != nil {
			return err
		}
		fmt.Printf("Would create tag: v%s (current: %s)\n", next, current)
		return nil
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag <patch|minor|major|epoch>",
	Short: "Create a version tag for an explicit bump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bump, err := conventional.ParseBumpType(args[0])
		if err != nil {
			return err
		}
		return createTag(gitlog.Collector{RepoPath: repoPath}, bump)
	},
}

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Analyze commits and create the suggested version tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		git := gitlog.Collector{RepoPath: repoPath}

		analysis, err := analyzeRange(git)
		if err != nil {
			return err
		}

		// No bump needed is a normal outcome, distinct from git failures.
		if analysis.Bump == conventional.BumpNone {
			fmt.Println("No version bump needed based on conventional commits")
			return nil
		}

		printAnalysis(analysis)
		return createTag(git, analysis.Bump)
	},
}

// analyzeRange collects the commit messages since the latest version tag
// (or all of history when no tag exists) and folds them into a bump.
func analyzeRange(git gitlog.Collector) (conventional.Analysis, error) {
	tag, err := git.LatestTag()
	if err != nil {
		return conventional.Analysis{}, err
	}
	if tag == "" {
		fmt.Println("Latest version tag: none found")
	} else {
		fmt.Printf("Latest version tag: %s\n", tag)
	}

	messages, err := git.MessagesSince(tag)
	if err != nil {
		return conventional.Analysis{}, err
	}
	if len(messages) == 0 {
		fmt.Println("No commits found since last version tag")
	}

	return conventional.Analyze(messages), nil
}

func printAnalysis(a conventional.Analysis) {
	fmt.Println()
	fmt.Println("Commits since last version:")
	for _, c := range a.Commits {
		marker := " "
		if c.Breaking {
			marker = "!"
		}
		scope := ""
		if c.Scope != "" {
			scope = "(" + c.Scope + ")"
		}
		fmt.Printf("  %s %s%s: %s\n", marker, c.Type, scope, c.Description)
	}
	if a.Skipped > 0 {
		fmt.Printf("  (skipped %d non-conventional commit(s))\n", a.Skipped)
	}
	fmt.Println()
	fmt.Printf("Recommended version bump: %s\n", a.Bump)
}

func createTag(git gitlog.Collector, bump conventional.BumpType) error {
	current := git.CurrentVersion()
	cur, err := version.Parse(current)
	if err != nil {
		return fmt.Errorf("current tag does not hold a valid version: %w", err)
	}

	next, err := cur.Bump(bump)
	if err != nil {
		return err
	}

	fmt.Printf("Bumping %s: %s -> %s\n", bump, current, next)
	if err := git.CreateTag(next.String()); err != nil {
		return err
	}

	fmt.Printf("Created git tag: v%s\n", next)
	fmt.Printf("To push the tag: git push origin v%s\n", next)
	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(autoCmd)
}
