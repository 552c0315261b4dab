// Package conventional parses conventional commit messages and reduces them
// to a single version-bump decision. It is the one source of truth for the
// commit grammar and the type-to-bump table used by the release tooling.
package conventional

import (
	"regexp"
	"strings"
)

// Commit is a single parsed conventional commit message.
type Commit struct {
	Type        string // lowercased type token, e.g. "feat", "fix"
	Scope       string // optional parenthesized scope, "" when absent
	Description string // summary line
	Body        string // free text after the first blank line, "" when absent
	Breaking    bool
	Raw         string // original message, kept for diagnostics
}

// commitPattern matches "type(scope)!: description\n\nbody" against the
// whole trimmed message. The body group is matched greedily across
// newlines, the description lazily up to the first blank line.
var commitPattern = regexp.MustCompile(`(?s)^(\w+)(?:\(([^)]+)\))?(!)?: (.+?)(?:\n\n(.*))?$`)

// breakingPattern detects BREAKING CHANGE / BREAKING-CHANGE footers at the
// start of a body line. Case-sensitive, per the conventional commits spec.
var breakingPattern = regexp.MustCompile(`(?m)^BREAKING[ -]CHANGE:`)

// Parse parses a single commit message. Messages that do not follow the
// conventional commit grammar are not an error: they report ok=false and
// contribute nothing to bump decisions.
func Parse(message string) (Commit, bool) {
	m := commitPattern.FindStringSubmatch(strings.TrimSpace(message))
	if m == nil {
		return Commit{}, false
	}

	c := Commit{
		Type:        strings.ToLower(m[1]),
		Scope:       m[2],
		Description: m[4],
		Body:        m[5],
		Breaking:    m[3] == "!",
		Raw:         message,
	}

	// The ! marker and a body footer are independent signals; either alone
	// marks the commit as breaking.
	if !c.Breaking && c.Body != "" {
		c.Breaking = breakingPattern.MatchString(c.Body)
	}

	return c, true
}
