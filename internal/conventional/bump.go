package conventional

import (
	"fmt"
	"strings"
)

// BumpType is the magnitude of a version increment. Values are totally
// ordered from no-op to epoch, so the largest bump across a commit range
// is a plain max fold.
type BumpType int

const (
	BumpNone BumpType = iota
	BumpPatch
	BumpMinor
	BumpMajor
	BumpEpoch
)

func (b BumpType) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	case BumpEpoch:
		return "epoch"
	default:
		return "none"
	}
}

// ParseBumpType maps a user-supplied bump name onto a BumpType. Only the
// four applicable magnitudes are accepted; asking for "none" (or anything
// else) is a caller error.
func ParseBumpType(s string) (BumpType, error) {
	switch strings.ToLower(s) {
	case "patch":
		return BumpPatch, nil
	case "minor":
		return BumpMinor, nil
	case "major":
		return BumpMajor, nil
	case "epoch":
		return BumpEpoch, nil
	}
	return BumpNone, fmt.Errorf("invalid bump type: %q (use patch, minor, major or epoch)", s)
}

// typeBumps maps commit types onto their default bump magnitude. Types
// absent from the table do not bump the version at all.
var typeBumps = map[string]BumpType{
	"fix":      BumpPatch,
	"feat":     BumpMinor,
	"perf":     BumpPatch, // performance work ships like a bug fix
	"revert":   BumpPatch,
	"refactor": BumpNone,
	"style":    BumpNone,
	"test":     BumpNone,
	"docs":     BumpNone,
	"chore":    BumpNone,
	"build":    BumpNone,
	"ci":       BumpNone,
}

// epochTypes trigger an epoch bump regardless of any other signal.
var epochTypes = map[string]struct{}{
	"epoch": {},
	"arch":  {},
}

// BumpFor returns the bump magnitude a single commit asks for. Epoch types
// win over the breaking flag, which wins over the type table.
func BumpFor(c Commit) BumpType {
	if _, ok := epochTypes[c.Type]; ok {
		return BumpEpoch
	}
	if c.Breaking {
		return BumpMajor
	}
	return typeBumps[c.Type]
}

// Calculate folds raw commit messages into the single bump the range
// requires. Messages that do not parse as conventional commits contribute
// nothing. The fold is a commutative max, so input order never matters;
// the early return on Epoch is purely an early-out since no higher value
// is reachable.
func Calculate(messages []string) BumpType {
	max := BumpNone
	for _, msg := range messages {
		c, ok := Parse(msg)
		if !ok {
			continue
		}
		if b := BumpFor(c); b > max {
			max = b
		}
		if max == BumpEpoch {
			break
		}
	}
	return max
}

// Analysis is the result of analyzing a commit range.
type Analysis struct {
	Bump    BumpType
	Commits []Commit // successfully parsed commits, in input order
	Skipped int      // messages that did not match the grammar
}

// Analyze parses every message in the range, keeping the parsed commits
// for reporting and counting the ones that were skipped. Unlike Calculate
// it never short-circuits, because callers want the full commit listing.
func Analyze(messages []string) Analysis {
	a := Analysis{Bump: BumpNone}
	for _, msg := range messages {
		c, ok := Parse(msg)
		if !ok {
			a.Skipped++
			continue
		}
		a.Commits = append(a.Commits, c)
		if b := BumpFor(c); b > a.Bump {
			a.Bump = b
		}
	}
	return a
}
