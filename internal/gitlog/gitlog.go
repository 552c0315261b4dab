// Package gitlog shells out to the git binary for the queries the release
// tooling needs: commit messages since a tag, tag lookup and tag creation.
package gitlog

import (
	"fmt"
	"os/exec"
	"strings"
)

// Collector wraps git operations. We keep it small and focused on the
// handful of queries the version tooling actually runs.
type Collector struct {
	RepoPath string // "" means the current working directory
}

func (c Collector) git(args ...string) (string, error) {
	if c.RepoPath != "" {
		args = append([]string{"-C", c.RepoPath}, args...)
	}
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// MessagesSince returns the full commit messages reachable from HEAD but
// not from the given tag, or all of history when tag is empty. Messages
// are separated in the git output by an ASCII record separator so that
// multi-paragraph bodies survive intact.
func (c Collector) MessagesSince(tag string) ([]string, error) {
	args := []string{"log", "--pretty=format:%B%x1e"}
	if tag != "" {
		args = []string{"log", tag + "..HEAD", "--pretty=format:%B%x1e"}
	}

	out, err := c.git(args...)
	if err != nil {
		return nil, err
	}

	var messages []string
	for _, chunk := range strings.Split(out, "\x1e") {
		if msg := strings.TrimSpace(chunk); msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// LatestTag returns the newest v-prefixed tag by version sort, or "" when
// the repository has none.
func (c Collector) LatestTag() (string, error) {
	out, err := c.git("tag", "-l", "v*", "--sort=-version:refname")
	if err != nil {
		return "", err
	}
	tags := strings.SplitN(strings.TrimSpace(out), "\n", 2)
	if len(tags) == 0 || tags[0] == "" {
		return "", nil
	}
	return tags[0], nil
}

// CurrentVersion reads the version from the nearest v-prefixed tag,
// falling back to 1.0.0 in an untagged repository.
func (c Collector) CurrentVersion() string {
	out, err := c.git("describe", "--tags", "--abbrev=0", "--match=v*")
	if err != nil {
		return "1.0.0"
	}
	return strings.TrimPrefix(strings.TrimSpace(out), "v")
}

// DevVersion returns the clean version when HEAD sits exactly on a tag,
// and otherwise appends a .devN suffix with the commit count since the
// latest tag.
func (c Collector) DevVersion() string {
	if _, err := c.git("describe", "--tags", "--exact-match"); err == nil {
		return c.CurrentVersion()
	}

	base := c.CurrentVersion()
	out, err := c.git("rev-list", "--count", "v"+base+"..HEAD")
	if err != nil {
		return base + ".dev0"
	}
	return base + ".dev" + strings.TrimSpace(out)
}

// CreateTag tags HEAD as v<version>. Pushing the tag is left to the user.
func (c Collector) CreateTag(version string) error {
	if _, err := c.git("tag", "v"+version); err != nil {
		return fmt.Errorf("create tag v%s: %w", version, err)
	}
	return nil
}
